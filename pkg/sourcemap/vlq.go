package sourcemap

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

	vlqShift    = 5
	vlqBase     = 1 << vlqShift
	vlqMask     = vlqBase - 1
	vlqContinue = vlqBase
)

func writeVLQ(sb *strings.Builder, v int) {
	n := v << 1
	if v < 0 {
		n = (-v << 1) | 1
	}

	for {
		digit := n & vlqMask
		n >>= vlqShift
		if n > 0 {
			digit |= vlqContinue
		}

		sb.WriteByte(base64Chars[digit])
		if n == 0 {
			return
		}
	}
}

func readVLQs(segment string) ([]int, error) {
	var (
		out          []int
		value, shift int
	)

	for i := 0; i < len(segment); i++ {
		digit := strings.IndexByte(base64Chars, segment[i])
		if digit < 0 {
			return nil, errors.Errorf("invalid base64 character %q in segment %q", segment[i], segment)
		}

		value += (digit & vlqMask) << shift
		if digit&vlqContinue != 0 {
			shift += vlqShift
			continue
		}

		if value&1 == 1 {
			out = append(out, -(value >> 1))
		} else {
			out = append(out, value>>1)
		}

		value, shift = 0, 0
	}

	if shift != 0 {
		return nil, errors.Errorf("truncated segment %q", segment)
	}

	return out, nil
}
