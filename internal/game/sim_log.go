package game

import (
	"fmt"
	"strings"
)

// Log categories and keys recorded by the simulation.
const (
	CatSpawn  = "spawn"
	CatCombat = "combat"
	CatAI     = "ai"
	CatGrowth = "growth"
	CatMatch  = "match"

	KeyEnemy       = "enemy"
	KeyFire        = "fire"
	KeyHit         = "hit"
	KeyKill        = "kill"
	KeyPlayerHit   = "player_hit"
	KeyStateChange = "state_change"
	KeyScale       = "scale"
	KeyGameOver    = "game_over"
)

// SimLogEntry is one recorded simulation event.
type SimLogEntry struct {
	Tick     int
	Label    string // "P", "E3", or "--" for global events
	Role     string // "player", "enemy", or "--"
	Category string
	Key      string
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] E3   combat    kill             by P dmg=50.0
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Label, e.Category, e.Key, e.Value)
}

// SimLog collects structured events across a whole match. It is unbounded and
// meant for tests and headless runs; hosts usually read Snapshot.Events.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-shot fire entries and AI
// state changes are recorded as well.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Verbose reports whether high-volume entries are kept.
func (sl *SimLog) Verbose() bool { return sl != nil && sl.verbose }

// Append records an entry.
func (sl *SimLog) Append(e SimLogEntry) {
	sl.entries = append(sl.entries, e)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entries match the given category and key.
func (sl *SimLog) Count(category, key string) int {
	return len(sl.Filter(category, key))
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
