package stats

import (
	"bytes"
	"encoding/json"

	"github.com/samber/lo"
)

// Field names and markers used in every PlayerStats.
const (
	UsernameKey = "username"
	ErrorKey    = "Error"

	// NoData marks a stat category whose leaderboard has no entries.
	NoData = "No data"

	// NotFound is the ErrorKey value for a player the service did not return.
	NotFound = "Not found"
)

// Field is one named stat. Value holds a float64 for numbers and a string
// otherwise.
type Field struct {
	Key   string
	Value any
}

// PlayerStats is the flat, ordered stat mapping of one player.
// It always starts with the username field and is immutable once built.
type PlayerStats struct {
	fields []Field
	index  map[string]int
}

// NewPlayerStats builds a PlayerStats for username followed by fields.
// A later field with a duplicate key overwrites the earlier value in place.
func NewPlayerStats(username string, fields ...Field) PlayerStats {
	ps := PlayerStats{
		fields: make([]Field, 0, len(fields)+1),
		index:  make(map[string]int, len(fields)+1),
	}
	ps.set(UsernameKey, username)
	for _, f := range fields {
		ps.set(f.Key, f.Value)
	}
	return ps
}

// NotFoundStats is the placeholder row for a player the service rejected.
func NotFoundStats(username string) PlayerStats {
	return NewPlayerStats(username, Field{Key: ErrorKey, Value: NotFound})
}

func (p *PlayerStats) set(key string, value any) {
	if i, ok := p.index[key]; ok {
		p.fields[i].Value = value
		return
	}
	p.index[key] = len(p.fields)
	p.fields = append(p.fields, Field{Key: key, Value: value})
}

// Username returns the queried player name.
func (p PlayerStats) Username() string {
	v, _ := p.Get(UsernameKey)
	s, _ := v.(string)
	return s
}

// Failed reports whether this is an error placeholder.
func (p PlayerStats) Failed() bool {
	_, ok := p.index[ErrorKey]
	return ok
}

// Get returns the value stored under key.
func (p PlayerStats) Get(key string) (any, bool) {
	i, ok := p.index[key]
	if !ok {
		return nil, false
	}
	return p.fields[i].Value, true
}

// Keys returns the field names in order.
func (p PlayerStats) Keys() []string {
	return lo.Map(p.fields, func(f Field, _ int) string {
		return f.Key
	})
}

// Fields returns a copy of the ordered fields.
func (p PlayerStats) Fields() []Field {
	return append([]Field(nil), p.fields...)
}

// Len returns the number of fields.
func (p PlayerStats) Len() int {
	return len(p.fields)
}

// MarshalJSON encodes the stats as a JSON object, keeping field order.
func (p PlayerStats) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range p.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Batch is the stats of one refresh cycle, one entry per detected player in
// detection order.
type Batch []PlayerStats

// Columns returns the keys of the first entry, or nil for an empty batch.
func (b Batch) Columns() []string {
	if len(b) == 0 {
		return nil
	}
	return b[0].Keys()
}

// Rows renders each entry against columns. Missing keys render blank and
// keys outside columns are ignored.
func (b Batch) Rows(columns []string) [][]string {
	return lo.Map(b, func(ps PlayerStats, _ int) []string {
		return lo.Map(columns, func(col string, _ int) string {
			if v, ok := ps.Get(col); ok {
				return FormatValue(v)
			}
			return ""
		})
	})
}
