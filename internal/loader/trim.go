package loader

import "strings"

// Trim normalizes docstring whitespace. Trailing space is removed from every
// line and leading space from the first. The indentation of the first
// indented non-empty line after it is removed from all following lines,
// keeping any indentation beyond that.
func Trim(docstring string) string {
	if docstring == "" {
		return ""
	}
	lines := strings.Split(docstring, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	lines[0] = strings.TrimLeft(lines[0], " \t")

	indent := -1
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		if line == "" {
			continue
		}
		stripped := strings.TrimLeft(line, " \t")
		delta := len(line) - len(stripped)
		switch {
		case indent < 0:
			indent = delta
		case delta > indent:
			stripped = strings.Repeat(" ", delta-indent) + stripped
		}
		lines[i] = stripped
	}
	return strings.Join(lines, "\n")
}
