package lobby

import "strings"

// ChatContent returns the message part of a chat line, everything after the
// first chat marker. Lines without the marker are returned unchanged.
func ChatContent(line string) string {
	if _, content, ok := strings.Cut(line, ChatMarker); ok {
		return content
	}
	return line
}

// IsRoster reports whether chat content looks like a roster announcement:
// at least two commas and not the system announcement prefix.
func IsRoster(content string) bool {
	return !strings.HasPrefix(content, SystemPrefix) && strings.Count(content, ",") >= 2
}

// Detect returns the most recent roster among the chat lines, which are
// ordered oldest first. Scanning stops at the newest qualifying line; older
// lines are never considered. The zero Roster is returned when nothing
// qualifies.
func Detect(lines []string) Roster {
	for i := len(lines) - 1; i >= 0; i-- {
		content := ChatContent(lines[i])
		if IsRoster(content) {
			return Roster{
				Line:  content,
				Names: ExtractNames(content),
			}
		}
	}
	return Roster{}
}

// ExtractNames splits roster content on commas and trims each token.
// Tokens are not validated and duplicates are kept.
func ExtractNames(content string) []string {
	parts := strings.Split(content, ",")
	names := make([]string, len(parts))
	for i, p := range parts {
		names[i] = strings.TrimSpace(p)
	}
	return names
}

// SanitizeName reduces an extracted token to a queryable player name:
// surrounding whitespace and stray commas are removed and only the first
// whitespace-delimited word is kept. Returns "" when nothing is left.
func SanitizeName(name string) string {
	fields := strings.Fields(strings.ReplaceAll(name, ",", ""))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
