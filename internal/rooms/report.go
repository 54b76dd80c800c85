package rooms

import (
	"fmt"
	"sort"

	"github.com/crutrack/RoomTracker/pkg/model"
)

// WeeklyBudget is the reference teaching time per room and week, in
// minutes (40 hours).
const WeeklyBudget = 40 * 60

// ConflictPair is two slots claiming the same room at the same time.
type ConflictPair struct {
	A model.Slot `json:"a"`
	B model.Slot `json:"b"`
}

// Conflicts lists every pair of overlapping slots, in iteration order.
func Conflicts(set *model.SlotSet) []ConflictPair {
	slots := set.Slots()
	var pairs []ConflictPair
	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			if slots[i].Overlaps(slots[j]) {
				pairs = append(pairs, ConflictPair{slots[i], slots[j]})
			}
		}
	}
	return pairs
}

// ConflictReport checks the set for double-booked rooms and returns a
// printable report.
func ConflictReport(set *model.SlotSet) (bool, string) {
	pairs := Conflicts(set)
	if len(pairs) == 0 {
		return true, "[  OK]: Room conflict check.\n"
	}

	message := "[FAIL]: Room conflict check.\n"
	message += fmt.Sprintf("- There are %d conflicting slot pairs:\n", len(pairs))
	for _, p := range pairs {
		message += fmt.Sprintf("    %v <> %v\n", p.A, p.B)
	}
	return false, message
}

// RoomUsage is the weekly occupancy of one room.
type RoomUsage struct {
	Room        string  `json:"room"`
	BusyMinutes int     `json:"busyMinutes"`
	Rate        float64 `json:"rate"`
}

// UsageStats computes per-room occupancy against the weekly budget, sorted
// by room.
func UsageStats(set *model.SlotSet) []RoomUsage {
	minutes := make(map[string]int)
	for _, s := range set.Slots() {
		minutes[s.Room] += int(s.End - s.Start)
	}

	var usage []RoomUsage
	for _, room := range AllRooms(set) {
		m := minutes[room]
		usage = append(usage, RoomUsage{
			Room:        room,
			BusyMinutes: m,
			Rate:        float64(m) / WeeklyBudget * 100,
		})
	}
	return usage
}

// AverageRate is the mean occupancy rate over the given rooms.
func AverageRate(usage []RoomUsage) float64 {
	if len(usage) == 0 {
		return 0
	}
	var sum float64
	for _, u := range usage {
		sum += u.Rate
	}
	return sum / float64(len(usage))
}

// CapacityRank counts distinct rooms offering a given capacity.
type CapacityRank struct {
	Capacity int `json:"capacity"`
	Rooms    int `json:"rooms"`
}

// RankByCapacity groups distinct rooms per observed capacity, largest
// capacity first.
func RankByCapacity(set *model.SlotSet) []CapacityRank {
	byCapacity := make(map[int]map[string]bool)
	for _, s := range set.Slots() {
		if byCapacity[s.Capacity] == nil {
			byCapacity[s.Capacity] = make(map[string]bool)
		}
		byCapacity[s.Capacity][s.Room] = true
	}

	var ranks []CapacityRank
	for capacity, inRooms := range byCapacity {
		ranks = append(ranks, CapacityRank{Capacity: capacity, Rooms: len(inRooms)})
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i].Capacity > ranks[j].Capacity })
	return ranks
}
