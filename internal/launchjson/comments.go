package launchjson

import "strings"

const commentMarker = "//"

// StripLineComments drops every line containing a comment marker so the
// remaining text parses as strict JSON. The strip is line-based and lossy:
// stripped lines are not restored on write, and a line whose value text
// itself contains "//" (for example a URL) is lost with it.
func StripLineComments(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.Contains(line, commentMarker) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
