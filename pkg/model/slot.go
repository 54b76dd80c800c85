package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Day is a working weekday (Monday through Friday).
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday

	NumDays = 5
)

var dayCodes = [NumDays]string{"L", "MA", "ME", "J", "V"}
var dayNames = [NumDays]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
var dayICalCodes = [NumDays]string{"MO", "TU", "WE", "TH", "FR"}

// ParseDay converts a CRU day code (L, MA, ME, J, V) to a Day.
func ParseDay(code string) (Day, bool) {
	for i, c := range dayCodes {
		if c == code {
			return Day(i), true
		}
	}
	return 0, false
}

func (d Day) Valid() bool { return d >= Monday && d <= Friday }

// Code returns the CRU day code.
func (d Day) Code() string {
	if !d.Valid() {
		return "?"
	}
	return dayCodes[d]
}

// ICalCode returns the iCalendar BYDAY code.
func (d Day) ICalCode() string {
	if !d.Valid() {
		return "MO"
	}
	return dayICalCodes[d]
}

// Weekday returns the matching time.Weekday.
func (d Day) Weekday() time.Weekday {
	return time.Weekday(int(d) + 1)
}

func (d Day) String() string {
	if !d.Valid() {
		return "?"
	}
	return dayNames[d]
}

// LessonType is a normalized lesson type. Raw codes with an unknown leading
// letter pass through unchanged.
type LessonType string

const (
	Lecture  LessonType = "CM"
	Tutorial LessonType = "TD"
	Lab      LessonType = "TP"
)

// NormalizeLessonType maps a raw lesson type code (C1, D2, T1, ...) to its
// normalized type by its first letter.
func NormalizeLessonType(raw string) LessonType {
	if raw == "" {
		return LessonType(raw)
	}
	switch strings.ToUpper(raw[:1]) {
	case "C":
		return Lecture
	case "D":
		return Tutorial
	case "T":
		return Lab
	default:
		return LessonType(raw)
	}
}

// Clock is a time of day in minutes since midnight.
type Clock int

// NewClock builds a Clock from an hour and minute.
func NewClock(hour, min int) Clock {
	return Clock(hour*60 + min)
}

// ParseClock parses "H:MM" or "HH:MM".
func ParseClock(s string) (Clock, error) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	min, err := strconv.Atoi(m)
	if err != nil || len(m) != 2 || min < 0 || min > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return NewClock(hour, min), nil
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Slot is one weekly recurring class booking. Slots are value objects and
// are never mutated after construction.
type Slot struct {
	CourseCode string
	LessonType LessonType
	Capacity   int
	Day        Day
	Start      Clock
	End        Clock
	Room       string
	Subgroup   string
	GroupIndex int
}

// Equal reports full-field equality, the relation used for deduplication.
func (s Slot) Equal(o Slot) bool {
	return s == o
}

// Overlaps reports a time conflict: same room, same day, intersecting
// half-open time intervals. Course identity is irrelevant.
func (s Slot) Overlaps(o Slot) bool {
	if s.Room != o.Room || s.Day != o.Day {
		return false
	}
	return s.Start < o.End && o.Start < s.End
}

func (s Slot) String() string {
	return fmt.Sprintf("%s %s %s %s-%s %s", s.CourseCode, s.LessonType, s.Day.Code(), s.Start, s.End, s.Room)
}
