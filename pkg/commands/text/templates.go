// Package text normalizes help text for statops commands.
package text

import (
	"strings"
)

// Indentation is the standard indentation for example lines.
const Indentation = `  `

// LongDesc trims surrounding whitespace and the common indentation of a raw-string long
// description, so it can be written indented in source.
func LongDesc(s string) string {
	lines := strings.Split(strings.Trim(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Examples trims every example line and indents it with Indentation. Blank lines are dropped.
func Examples(s string) string {
	var b strings.Builder
	for line := range strings.SplitSeq(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(Indentation)
		b.WriteString(trimmed)
	}

	return b.String()
}
