package lobby

const (
	// ChatMarker identifies a log line as a chat message.
	ChatMarker = "[CHAT] "

	// SystemPrefix starts a server announcement that shares the roster's
	// comma-joined shape but is not a roster.
	SystemPrefix = "BedWars ?"

	// DefaultTailLines is the number of log lines considered per scan.
	DefaultTailLines = 40
)

// Roster is the most recent roster announcement found in a chat tail.
type Roster struct {
	// Line is the chat content the names were extracted from.
	Line string `json:"line,omitempty"`

	// Names are the comma-separated tokens of Line, trimmed, in order.
	Names []string `json:"names"`
}

// Empty reports whether no roster was detected.
func (r Roster) Empty() bool {
	return len(r.Names) == 0
}
