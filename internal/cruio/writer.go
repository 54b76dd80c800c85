package cruio

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/crutrack/RoomTracker/pkg/model"
)

// SlotCSVRow is the CSV projection of one slot.
type SlotCSVRow struct {
	CourseCode string `csv:"course_code"`
	LessonType string `csv:"lesson_type"`
	Day        string `csv:"day"`
	Start      string `csv:"start"`
	End        string `csv:"end"`
	Room       string `csv:"room"`
	Subgroup   string `csv:"subgroup"`
	Capacity   int    `csv:"capacity"`
	GroupIndex int    `csv:"group"`
}

func toCSVRows(set *model.SlotSet) []*SlotCSVRow {
	var rows []*SlotCSVRow
	for _, s := range set.Slots() {
		rows = append(rows, &SlotCSVRow{
			CourseCode: s.CourseCode,
			LessonType: string(s.LessonType),
			Day:        s.Day.Code(),
			Start:      s.Start.String(),
			End:        s.End.String(),
			Room:       s.Room,
			Subgroup:   s.Subgroup,
			Capacity:   s.Capacity,
			GroupIndex: s.GroupIndex,
		})
	}
	return rows
}

// ExportSlots writes the set to the CSV file at path, chronologically
// sorted.
func ExportSlots(set *model.SlotSet, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer out.Close()

	rows := toCSVRows(set.Clone().SortChrono())
	return gocsv.MarshalFile(&rows, out)
}

// ExportSlotsString renders the set as CSV text.
func ExportSlotsString(set *model.SlotSet) (string, error) {
	rows := toCSVRows(set)
	return gocsv.MarshalString(&rows)
}

// PrintSlots prints the set grouped by weekday.
func PrintSlots(set *model.SlotSet) {
	var day model.Day = -1
	for _, s := range set.Clone().SortChrono().Slots() {
		if s.Day != day {
			day = s.Day
			fmt.Printf("\n--- %s ---\n", day)
		}
		fmt.Printf("%s-%s  %-8s %-4s %-4s P=%d\n", s.Start, s.End, s.CourseCode, string(s.LessonType), s.Room, s.Capacity)
	}
	fmt.Printf("\nPrinted slots: %d\n", set.Len())
}
