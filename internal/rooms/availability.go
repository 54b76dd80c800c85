package rooms

import (
	"fmt"
	"sort"
	"strings"

	"github.com/crutrack/RoomTracker/pkg/model"
)

// Rooms open at 08:00 and close at 20:00.
var (
	WindowOpen  = model.NewClock(8, 0)
	WindowClose = model.NewClock(20, 0)
)

// Interval is a continuous time block, minutes from midnight, half-open.
type Interval struct {
	Start model.Clock `json:"start"`
	End   model.Clock `json:"end"`
}

// String renders "[08h-10h30]": minutes are omitted on the hour.
func (iv Interval) String() string {
	return fmt.Sprintf("[%s-%s]", formatHour(iv.Start), formatHour(iv.End))
}

func formatHour(c model.Clock) string {
	if c.Minute() == 0 {
		return fmt.Sprintf("%02dh", c.Hour())
	}
	return fmt.Sprintf("%02dh%02d", c.Hour(), c.Minute())
}

// mergeBusy sorts intervals by start and coalesces them. Touching intervals
// merge: back-to-back bookings leave no usable gap.
func mergeBusy(busy []Interval) []Interval {
	if len(busy) == 0 {
		return nil
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].Start < busy[j].Start })

	merged := []Interval{busy[0]}
	for _, iv := range busy[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
		} else {
			merged = append(merged, iv)
		}
	}
	return merged
}

// freeWithin complements the merged busy intervals against the working
// window. No bookings means the whole window is free.
func freeWithin(busy []Interval) []Interval {
	var free []Interval
	current := WindowOpen
	for _, iv := range mergeBusy(busy) {
		if iv.Start > current {
			free = append(free, Interval{current, iv.Start})
		}
		if iv.End > current {
			current = iv.End
		}
	}
	if current < WindowClose {
		free = append(free, Interval{current, WindowClose})
	}
	return free
}

// FreeIntervals computes the free time blocks of a room for every weekday.
// Room matching is case-insensitive.
func FreeIntervals(set *model.SlotSet, room string) map[model.Day][]Interval {
	inRoom := set.Filter(func(s model.Slot) bool {
		return strings.EqualFold(s.Room, room)
	})

	out := make(map[model.Day][]Interval, model.NumDays)
	for day := model.Monday; day <= model.Friday; day++ {
		var busy []Interval
		for _, s := range inRoom.Slots() {
			if s.Day == day {
				busy = append(busy, Interval{s.Start, s.End})
			}
		}
		out[day] = freeWithin(busy)
	}
	return out
}

// FreeRoomsAt returns, sorted, every room of the set with no slot
// conflicting with the requested window.
func FreeRoomsAt(set *model.SlotSet, day model.Day, start, end model.Clock) []string {
	free := []string{}
	for _, room := range AllRooms(set) {
		candidate := model.Slot{Day: day, Start: start, End: end, Room: room}
		busy := false
		for _, s := range set.Slots() {
			if s.Overlaps(candidate) {
				busy = true
				break
			}
		}
		if !busy {
			free = append(free, room)
		}
	}
	return free
}

// AllRooms returns the distinct room codes of the set, sorted.
func AllRooms(set *model.SlotSet) []string {
	seen := make(map[string]bool)
	var rooms []string
	for _, s := range set.Slots() {
		if !seen[s.Room] {
			seen[s.Room] = true
			rooms = append(rooms, s.Room)
		}
	}
	sort.Strings(rooms)
	return rooms
}

// Capacity returns the maximum seat count seen for the room, and whether
// the room appears in the set at all.
func Capacity(set *model.SlotSet, room string) (int, bool) {
	best, found := 0, false
	for _, s := range set.Slots() {
		if strings.EqualFold(s.Room, room) {
			found = true
			if s.Capacity > best {
				best = s.Capacity
			}
		}
	}
	return best, found
}

// RoomInfo pairs a room with its maximum observed capacity.
type RoomInfo struct {
	Room     string `json:"room"`
	Capacity int    `json:"capacity"`
}

// ForCourse lists the rooms a course is taught in, with capacities, sorted
// by room.
func ForCourse(set *model.SlotSet, courseCode string) []RoomInfo {
	return summary(set.Filter(func(s model.Slot) bool {
		return s.CourseCode == courseCode
	}))
}

// Summary lists every room of the set with its maximum capacity, sorted.
func Summary(set *model.SlotSet) []RoomInfo {
	return summary(set)
}

func summary(set *model.SlotSet) []RoomInfo {
	var infos []RoomInfo
	for _, room := range AllRooms(set) {
		seats, _ := Capacity(set, room)
		infos = append(infos, RoomInfo{Room: room, Capacity: seats})
	}
	return infos
}
