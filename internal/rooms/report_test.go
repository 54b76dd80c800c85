package rooms

import (
	"math"
	"strings"
	"testing"

	"github.com/crutrack/RoomTracker/pkg/model"
)

func TestConflicts(t *testing.T) {
	a := slot("S101", model.Monday, 10, 0, 12, 0)
	b := slot("S101", model.Monday, 11, 0, 13, 0)
	b.CourseCode = "AP03"
	c := slot("S102", model.Monday, 11, 0, 13, 0)

	set := model.NewSlotSet(a, b, c)
	pairs := Conflicts(set)
	if len(pairs) != 1 {
		t.Fatalf("conflicts = %d want 1", len(pairs))
	}
	if pairs[0].A != a || pairs[0].B != b {
		t.Fatalf("unexpected pair: %+v", pairs[0])
	}
}

func TestConflictReport(t *testing.T) {
	clean := model.NewSlotSet(slot("S101", model.Monday, 10, 0, 12, 0))
	ok, msg := ConflictReport(clean)
	if !ok || !strings.HasPrefix(msg, "[  OK]") {
		t.Fatalf("clean set: ok=%v msg=%q", ok, msg)
	}

	dirty := model.NewSlotSet(
		slot("S101", model.Monday, 10, 0, 12, 0),
		slot("S101", model.Monday, 11, 0, 13, 0),
	)
	ok, msg = ConflictReport(dirty)
	if ok || !strings.HasPrefix(msg, "[FAIL]") {
		t.Fatalf("dirty set: ok=%v msg=%q", ok, msg)
	}
}

func TestUsageStats(t *testing.T) {
	set := model.NewSlotSet(
		slot("S101", model.Monday, 10, 0, 12, 0),
		slot("S101", model.Tuesday, 10, 0, 12, 0),
		slot("A001", model.Monday, 8, 0, 9, 0),
	)

	usage := UsageStats(set)
	if len(usage) != 2 {
		t.Fatalf("usage entries = %d want 2", len(usage))
	}
	// sorted by room: A001 first
	if usage[0].Room != "A001" || usage[0].BusyMinutes != 60 {
		t.Fatalf("usage[0] = %+v", usage[0])
	}
	if usage[1].Room != "S101" || usage[1].BusyMinutes != 240 {
		t.Fatalf("usage[1] = %+v", usage[1])
	}
	if math.Abs(usage[1].Rate-10.0) > 1e-9 {
		t.Fatalf("rate = %f want 10.0", usage[1].Rate)
	}
	if avg := AverageRate(usage); math.Abs(avg-(2.5+10.0)/2) > 1e-9 {
		t.Fatalf("average = %f", avg)
	}
	if avg := AverageRate(nil); avg != 0 {
		t.Fatalf("average of no rooms = %f want 0", avg)
	}
}

func TestRankByCapacity(t *testing.T) {
	small := slot("S101", model.Monday, 10, 0, 12, 0)
	small2 := slot("S102", model.Monday, 10, 0, 12, 0)
	big := slot("A001", model.Tuesday, 10, 0, 12, 0)
	big.Capacity = 80

	set := model.NewSlotSet(small, small2, big)
	ranks := RankByCapacity(set)
	if len(ranks) != 2 {
		t.Fatalf("ranks = %v", ranks)
	}
	if ranks[0].Capacity != 80 || ranks[0].Rooms != 1 {
		t.Fatalf("ranks[0] = %+v", ranks[0])
	}
	if ranks[1].Capacity != 24 || ranks[1].Rooms != 2 {
		t.Fatalf("ranks[1] = %+v", ranks[1])
	}
}
