package cruio

import (
	"strings"
	"testing"

	"github.com/crutrack/RoomTracker/pkg/model"
)

func TestParseSingleSlotLine(t *testing.T) {
	input := "+ME01\r\n1,D1,P=24,H=L 10:00-12:00,F1,S=S101//\r\n"

	set, _ := Parse(input)
	slots := set.Slots()
	if len(slots) != 1 {
		t.Fatalf("parsed %d slots, want 1", len(slots))
	}

	want := model.Slot{
		CourseCode: "ME01",
		LessonType: model.Tutorial,
		Capacity:   24,
		Day:        model.Monday,
		Start:      model.NewClock(10, 0),
		End:        model.NewClock(12, 0),
		Room:       "S101",
		Subgroup:   "F1",
		GroupIndex: 1,
	}
	if slots[0] != want {
		t.Fatalf("slot = %+v want %+v", slots[0], want)
	}
}

func TestParseLessonTypeNormalization(t *testing.T) {
	tests := []struct {
		raw  string
		want model.LessonType
	}{
		{"C1", model.Lecture},
		{"D2", model.Tutorial},
		{"T1", model.Lab},
		{"X1", model.LessonType("X1")},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			input := "+ME01\n1," + tt.raw + ",P=24,H=L 10:00-12:00,F1,S=S101//\n"
			set, _ := Parse(input)
			slots := set.Slots()
			if len(slots) != 1 {
				t.Fatalf("parsed %d slots, want 1", len(slots))
			}
			if slots[0].LessonType != tt.want {
				t.Fatalf("lesson type = %q want %q", slots[0].LessonType, tt.want)
			}
		})
	}
}

func TestParseTemplateHeaderResetsState(t *testing.T) {
	input := strings.Join([]string{
		"+ME01",
		"1,D1,P=24,H=L 10:00-12:00,F1,S=S101//",
		"+UVUV",
		"2,T1,P=18,H=MA 10:00-12:00,F2,S=S202//",
		"+AP03",
		"3,C1,P=80,H=V 08:00-10:00,F1,S=A001//",
	}, "\n")

	set, diags := Parse(input)
	slots := set.Slots()
	if len(slots) != 2 {
		t.Fatalf("parsed %d slots, want 2 (template course must drop its lines)", len(slots))
	}
	if slots[0].CourseCode != "ME01" || slots[1].CourseCode != "AP03" {
		t.Fatalf("unexpected course codes: %s, %s", slots[0].CourseCode, slots[1].CourseCode)
	}

	var kinds []string
	for _, d := range diags {
		kinds = append(kinds, d.Kind)
	}
	if !strings.Contains(strings.Join(kinds, " "), DiagTemplateCourse) {
		t.Fatalf("expected a %s diagnostic, got %v", DiagTemplateCourse, kinds)
	}
}

func TestParseFooterAndNoise(t *testing.T) {
	input := strings.Join([]string{
		"Emploi du temps",
		"+ME01",
		"This is not a slot line",
		"1,D1,P=24,H=L 08:00-10:00,F1,S=S101//",
		"Page générée en 0.01s",
	}, "\r\n")

	set, diags := Parse(input)
	if set.Len() != 1 {
		t.Fatalf("parsed %d slots, want 1", set.Len())
	}

	var footer, noise int
	for _, d := range diags {
		switch d.Kind {
		case DiagFooter:
			footer++
		case DiagNoise:
			noise++
		}
	}
	if footer != 1 {
		t.Fatalf("footer diagnostics = %d want 1", footer)
	}
	if noise != 2 {
		t.Fatalf("noise diagnostics = %d want 2", noise)
	}
}

func TestParseBadSlotLinesAreRecoverable(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"bad day code", "1,D1,P=24,H=S 10:00-12:00,F1,S=S101//"},
		{"capacity too wide", "1,D1,P=2400,H=L 10:00-12:00,F1,S=S101//"},
		{"room too short", "1,D1,P=24,H=L 10:00-12:00,F1,S=S1//"},
		{"missing terminator", "1,D1,P=24,H=L 10:00-12:00,F1,S=S101"},
		{"hour out of range", "1,D1,P=24,H=L 25:00-26:00,F1,S=S101//"},
		{"start not before end", "1,D1,P=24,H=L 12:00-10:00,F1,S=S101//"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "+ME01\n" + tt.line + "\n2,T1,P=18,H=MA 10:00-12:00,F2,S=S202//\n"
			set, diags := Parse(input)
			if set.Len() != 1 {
				t.Fatalf("parsed %d slots, want only the valid one", set.Len())
			}
			found := false
			for _, d := range diags {
				if d.Kind == DiagBadSlotLine {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected a %s diagnostic", DiagBadSlotLine)
			}
		})
	}
}

func TestParseSlotLineBeforeAnyHeader(t *testing.T) {
	input := "1,D1,P=24,H=L 10:00-12:00,F1,S=S101//\n"
	set, diags := Parse(input)
	if set.Len() != 0 {
		t.Fatalf("parsed %d slots, want 0 without an active course", set.Len())
	}
	if len(diags) != 1 || diags[0].Kind != DiagNoise {
		t.Fatalf("diags = %v, want one noise entry", diags)
	}
}

func TestParseKeepsFileOrderAndDeduplicates(t *testing.T) {
	input := strings.Join([]string{
		"+ME01",
		"1,D1,P=24,H=L 08:00-10:00,F1,S=S101//",
		"2,T1,P=18,H=L 10:00-12:00,F2,S=S102//",
		"1,D1,P=24,H=L 08:00-10:00,F1,S=S101//",
	}, "\n")

	set, _ := Parse(input)
	slots := set.Slots()
	if len(slots) != 2 {
		t.Fatalf("parsed %d slots, want 2 (duplicate absorbed)", len(slots))
	}
	if slots[0].Start != model.NewClock(8, 0) || slots[1].Start != model.NewClock(10, 0) {
		t.Fatalf("file order not preserved: %v", slots)
	}
}

func TestParseWhitespaceTolerance(t *testing.T) {
	input := "+ME01\n1 , D1 , P= 24 , H= ME 9:00-10:30 , F1 , S= S104//\n"
	set, _ := Parse(input)
	slots := set.Slots()
	if len(slots) != 1 {
		t.Fatalf("parsed %d slots, want 1", len(slots))
	}
	s := slots[0]
	if s.Day != model.Wednesday || s.Start != model.NewClock(9, 0) || s.End != model.NewClock(10, 30) || s.Room != "S104" {
		t.Fatalf("unexpected slot: %+v", s)
	}
}
