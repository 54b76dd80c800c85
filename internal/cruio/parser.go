package cruio

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/crutrack/RoomTracker/pkg/model"
)

// Diagnostic kinds reported by Parse.
const (
	DiagFooter         = "footer"
	DiagTemplateCourse = "template-course"
	DiagNoise          = "noise"
	DiagBadSlotLine    = "bad-slot-line"
)

// Diagnostic describes one discarded input line. Parsing never fails on
// bad lines; callers may log or ignore these.
type Diagnostic struct {
	Line int    `json:"line"`
	Kind string `json:"kind"`
	Text string `json:"text"`
}

var (
	lineBreak     = regexp.MustCompile(`\r\n|\r|\n`)
	looksLikeSlot = regexp.MustCompile(`^\d+\s*,`)
	hasDigit      = regexp.MustCompile(`\d`)
	slotLine      = regexp.MustCompile(`^(\d+)\s*,\s*([A-Za-z]+\d+)\s*,\s*P=\s*(\d{1,3})\s*,\s*H=\s*(L|MA|ME|J|V)\s+(\d{1,2}:\d{2})-(\d{1,2}:\d{2})\s*,\s*([A-Za-z]\d)\s*,\s*S=\s*([A-Za-z0-9]{4})//\s*$`)
)

// Parse reads CRU text into a SlotSet.
//
// Header lines ("+CODE") select the active course; a header without any
// digit is a template course and clears the active course. "Page " footer
// lines and boilerplate are skipped. Slot lines attach to the active course
// and malformed ones are dropped individually, never aborting the parse.
func Parse(data string) (*model.SlotSet, []Diagnostic) {
	set := model.EmptySlotSet()
	var diags []Diagnostic

	activeCourse := ""
	for i, raw := range lineBreak.Split(data, -1) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lineNo := i + 1

		if strings.HasPrefix(line, "Page ") {
			diags = append(diags, Diagnostic{lineNo, DiagFooter, line})
			continue
		}

		if strings.HasPrefix(line, "+") {
			code := strings.TrimSpace(line[1:])
			if !hasDigit.MatchString(code) {
				activeCourse = ""
				diags = append(diags, Diagnostic{lineNo, DiagTemplateCourse, line})
				continue
			}
			activeCourse = code
			continue
		}

		if activeCourse != "" && looksLikeSlot.MatchString(line) {
			slot, err := parseSlotLine(line, activeCourse)
			if err != nil {
				diags = append(diags, Diagnostic{lineNo, DiagBadSlotLine, line})
				continue
			}
			set.Add(slot)
			continue
		}

		diags = append(diags, Diagnostic{lineNo, DiagNoise, line})
	}

	return set, diags
}

// parseSlotLine parses one slot line, e.g.
//
//	1,D1,P=24,H=ME 16:00-18:00,F1,S=S104//
func parseSlotLine(line, courseCode string) (model.Slot, error) {
	m := slotLine.FindStringSubmatch(line)
	if m == nil {
		return model.Slot{}, fmt.Errorf("invalid slot line: %s", line)
	}

	groupIndex, _ := strconv.Atoi(m[1])
	capacity, _ := strconv.Atoi(m[3])
	day, _ := model.ParseDay(m[4])

	start, err := model.ParseClock(m[5])
	if err != nil {
		return model.Slot{}, err
	}
	end, err := model.ParseClock(m[6])
	if err != nil {
		return model.Slot{}, err
	}
	if start >= end {
		return model.Slot{}, fmt.Errorf("start %s is not before end %s", start, end)
	}

	return model.Slot{
		CourseCode: courseCode,
		LessonType: model.NormalizeLessonType(m[2]),
		Capacity:   capacity,
		Day:        day,
		Start:      start,
		End:        end,
		Room:       m[8],
		Subgroup:   m[7],
		GroupIndex: groupIndex,
	}, nil
}
