package game

import (
	"strings"
	"testing"
)

func sampleLog() *SimLog {
	sl := NewSimLog(true)
	sl.Append(SimLogEntry{Tick: 1, Label: "E1", Role: "enemy", Category: CatSpawn, Key: KeyEnemy, Value: "at (0,0)"})
	sl.Append(SimLogEntry{Tick: 5, Label: "P", Role: "player", Category: CatCombat, Key: KeyFire, Value: "angle=0.00"})
	sl.Append(SimLogEntry{Tick: 9, Label: "E1", Role: "enemy", Category: CatCombat, Key: KeyKill, Value: "reward=100"})
	return sl
}

func TestSimLog_FilterTickRangeIsInclusive(t *testing.T) {
	sl := sampleLog()
	got := sl.FilterTickRange(5, 9)
	if len(got) != 2 || got[0].Tick != 5 || got[1].Tick != 9 {
		t.Fatalf("expected ticks 5 and 9, got %v", got)
	}
	if len(sl.FilterTickRange(10, 20)) != 0 {
		t.Fatal("range past the end should be empty")
	}
}

func TestSimLog_FormatOneLinePerEntry(t *testing.T) {
	sl := sampleLog()
	out := sl.Format()
	if n := strings.Count(out, "\n"); n != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", n, out)
	}
	if !strings.Contains(out, "[T=009] E1") || !strings.Contains(out, "reward=100") {
		t.Fatalf("unexpected format:\n%s", out)
	}
}

func TestSimLog_FormatRange(t *testing.T) {
	out := sampleLog().FormatRange(0, 5)
	if strings.Contains(out, "reward=100") {
		t.Fatalf("tick 9 should be outside the range:\n%s", out)
	}
	if !strings.Contains(out, "at (0,0)") || !strings.Contains(out, "angle=0.00") {
		t.Fatalf("missing in-range entries:\n%s", out)
	}
}
