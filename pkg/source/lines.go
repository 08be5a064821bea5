package source

import "strings"

func splitLines(content, newline string) []string {
	if newline == "" {
		return []string{content}
	}

	return strings.Split(content, newline)
}

// Join joins lines with newline. It is the inverse of Unit.Lines.
func Join(lines []string, newline string) string {
	return strings.Join(lines, newline)
}
