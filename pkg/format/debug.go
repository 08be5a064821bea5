package format

import (
	"strconv"
	"strings"

	"github.com/pseudomuto/lesskeeper/pkg/parser"
)

// debugInfo writes the line annotations requested by dumpLineNumbers.
func (r *renderer) debugInfo(rule *parser.Rule, depth int) {
	mode := r.tree.DebugInfo
	if mode == parser.DebugNone {
		return
	}

	line := strconv.Itoa(rule.Pos.Line)
	if mode == parser.DebugComments || mode == parser.DebugAll {
		r.write(r.indent(depth), "/* line ", line, ", ", r.tree.Filename, " */\n")
	}

	if mode == parser.DebugMediaQuery || mode == parser.DebugAll {
		r.write(
			r.indent(depth),
			"@media -sass-debug-info{filename{font-family:",
			escapeDebugPath("file://"+r.tree.Filename),
			"}line{font-family:\\00003",
			line,
			"}}\n",
		)
	}
}

// escapeDebugPath escapes the characters that are not valid in a CSS
// identifier. Backslashes become escaped forward slashes.
func escapeDebugPath(s string) string {
	var sb strings.Builder
	for _, c := range s {
		switch c {
		case '\\':
			sb.WriteString(`\/`)
		case '.', ':', '/':
			sb.WriteByte('\\')
			sb.WriteRune(c)
		default:
			sb.WriteRune(c)
		}
	}

	return sb.String()
}
