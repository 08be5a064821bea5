// Package cleancss applies a second, token-level minification pass to
// compressed CSS output: it drops comments and optional whitespace and
// shortens numbers and hex colors inside declarations.
package cleancss

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

var (
	numberPattern = regexp.MustCompile(`^([-+]?)(\d*)(?:\.(\d+))?([a-zA-Z%]*)$`)
	hexPattern    = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

	lengthUnits = map[string]bool{
		"": true, "px": true, "em": true, "rem": true, "ex": true, "ch": true,
		"pt": true, "pc": true, "cm": true, "mm": true, "in": true, "q": true,
		"vw": true, "vh": true, "vmin": true, "vmax": true,
	}
)

type token struct {
	tt   css.TokenType
	data string
}

// Minify returns src with comments removed (except /*! ones), whitespace
// collapsed, and numbers and colors shortened where it is safe to do so.
func Minify(src string) (string, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return "", err
	}

	optimizeDeclarations(tokens)
	return write(tokens), nil
}

func tokenize(src string) ([]token, error) {
	lex := css.NewLexer(parse.NewInput(bytes.NewReader([]byte(src))))

	var tokens []token
	for {
		tt, data := lex.Next()
		if tt == css.ErrorToken {
			if err := lex.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, errors.Wrap(err, "failed to tokenize css")
			}
			return tokens, nil
		}

		if tt == css.CommentToken && !bytes.HasPrefix(data, []byte("/*!")) {
			continue
		}

		tokens = append(tokens, token{tt: tt, data: string(data)})
	}
}

// optimizeDeclarations rewrites value tokens of every declaration. A
// declaration is a statement inside a block that ends with ';' or '}'.
func optimizeDeclarations(tokens []token) {
	depth, start := 0, 0
	for i, t := range tokens {
		switch t.tt {
		case css.LeftBraceToken:
			depth++
		case css.SemicolonToken, css.RightBraceToken:
			if depth > 0 {
				optimizeValue(tokens[start:i])
			}
			if t.tt == css.RightBraceToken {
				depth--
			}
		default:
			continue
		}

		start = i + 1
	}
}

func optimizeValue(decl []token) {
	inValue := false
	for i := range decl {
		t := &decl[i]
		if !inValue {
			inValue = t.tt == css.ColonToken
			continue
		}

		switch t.tt {
		case css.NumberToken, css.PercentageToken, css.DimensionToken:
			t.data = shortenNumber(t.data)
		case css.HashToken:
			t.data = shortenColor(t.data)
		}
	}
}

func shortenNumber(s string) string {
	m := numberPattern.FindStringSubmatch(s)
	if m == nil {
		return s
	}

	sign, whole, frac, unit := m[1], strings.TrimLeft(m[2], "0"), strings.TrimRight(m[3], "0"), m[4]
	if whole == "" && frac == "" {
		if lengthUnits[strings.ToLower(unit)] {
			return "0"
		}
		return "0" + unit
	}

	num := whole
	if frac != "" {
		num += "." + frac
	}

	return sign + num + unit
}

func shortenColor(s string) string {
	if !hexPattern.MatchString(s) {
		return s
	}

	s = strings.ToLower(s)
	if len(s) == 7 && s[1] == s[2] && s[3] == s[4] && s[5] == s[6] {
		return "#" + string(s[1]) + string(s[3]) + string(s[5])
	}

	return s
}

func write(tokens []token) string {
	var (
		buf     bytes.Buffer
		prev    css.TokenType = css.ErrorToken
		pending bool
	)

	for _, t := range tokens {
		if t.tt == css.WhitespaceToken {
			pending = true
			continue
		}

		switch t.tt {
		case css.RightBraceToken:
			trimSemicolon(&buf)
		case css.SemicolonToken:
			if prev == css.SemicolonToken || prev == css.LeftBraceToken {
				pending = false
				continue
			}
		}

		if pending && buf.Len() > 0 && !tightAfter(prev) && !tightBefore(t) {
			buf.WriteByte(' ')
		}

		buf.WriteString(t.data)
		prev = t.tt
		pending = false
	}

	return buf.String()
}

func trimSemicolon(buf *bytes.Buffer) {
	if n := buf.Len(); n > 0 && buf.Bytes()[n-1] == ';' {
		buf.Truncate(n - 1)
	}
}

func tightAfter(tt css.TokenType) bool {
	switch tt {
	case css.LeftBraceToken, css.RightBraceToken, css.SemicolonToken,
		css.CommaToken, css.ColonToken, css.LeftParenthesisToken, css.FunctionToken:
		return true
	}

	return false
}

func tightBefore(t token) bool {
	switch t.tt {
	case css.LeftBraceToken, css.RightBraceToken, css.SemicolonToken,
		css.CommaToken, css.RightParenthesisToken:
		return true
	case css.DelimToken:
		return t.data == "!"
	}

	return false
}
