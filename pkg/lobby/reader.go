package lobby

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// ReadOption configures ReadChatLines using the functional options pattern.
type ReadOption func(*readConfig)

type readConfig struct {
	tailLines int
}

func defaultReadConfig() *readConfig {
	return &readConfig{tailLines: DefaultTailLines}
}

func applyReadOptions(opts []ReadOption) *readConfig {
	cfg := defaultReadConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithTailLines sets how many lines from the end of the file are considered.
// Default: 40.
func WithTailLines(n int) ReadOption {
	return func(c *readConfig) {
		c.tailLines = n
	}
}

// Reader reads the chat tail of a fixed log file.
// The zero TailLines uses DefaultTailLines.
type Reader struct {
	Path      string
	TailLines int
}

// ReadChatLines reads the chat lines among the last TailLines lines of r.Path.
func (r Reader) ReadChatLines() ([]string, error) {
	n := r.TailLines
	if n == 0 {
		n = DefaultTailLines
	}
	return ReadChatLines(r.Path, WithTailLines(n))
}

// ReadChatLines returns the chat lines among the last N lines of the file,
// oldest first. Bytes are decoded as ISO-8859-1, so decoding never fails.
// Lines without the chat marker are dropped after the tail is taken, so the
// result may hold fewer than N lines.
func ReadChatLines(path string, opts ...ReadOption) ([]string, error) {
	if path == "" {
		return nil, ErrPathRequired
	}
	cfg := applyReadOptions(opts)
	if cfg.tailLines <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTailLines, cfg.tailLines)
	}

	lines, err := readLastNLines(path, cfg.tailLines)
	if err != nil {
		return nil, err
	}

	chat := make([]string, 0, len(lines))
	for _, line := range lines {
		if IsChatLine(line) {
			chat = append(chat, line)
		}
	}
	return chat, nil
}

// IsChatLine reports whether the line carries the chat marker.
func IsChatLine(line string) bool {
	return strings.Contains(line, ChatMarker)
}

// DecodeLine decodes raw log bytes as ISO-8859-1.
func DecodeLine(raw []byte) string {
	// ISO-8859-1 maps every byte to a rune; the decoder cannot fail.
	s, _ := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	return string(s)
}

// readLastNLines reads the last n lines from a file, oldest first.
func readLastNLines(path string, n int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}
	fileSize := stat.Size()

	if fileSize == 0 {
		return nil, nil
	}

	// Read from end in chunks until the buffer holds more than n newlines
	// or the whole file.
	const chunkSize = 4096
	var buffer []byte
	offset := fileSize
	newlines := 0

	for newlines <= n && offset > 0 {
		readSize := int64(chunkSize)
		if offset < readSize {
			readSize = offset
		}
		offset -= readSize

		chunk := make([]byte, readSize)
		if _, err := file.ReadAt(chunk, offset); err != nil {
			return nil, err
		}
		for _, b := range chunk {
			if b == '\n' {
				newlines++
			}
		}
		buffer = append(chunk, buffer...)
	}

	return extractLines(buffer, n, offset == 0), nil
}

// extractLines splits buffer into decoded lines and keeps only the last n.
// When the buffer does not start at the beginning of the file, its first
// line may be partial and is discarded.
func extractLines(buffer []byte, n int, fromStart bool) []string {
	var lines []string
	start := 0

	for i := 0; i < len(buffer); i++ {
		if buffer[i] == '\n' {
			lines = append(lines, DecodeLine(trimCR(buffer[start:i])))
			start = i + 1
		}
	}

	// Last line without trailing newline
	if start < len(buffer) {
		lines = append(lines, DecodeLine(trimCR(buffer[start:])))
	}

	if !fromStart && len(lines) > 0 {
		lines = lines[1:]
	}

	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}

	return lines
}

func trimCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}
