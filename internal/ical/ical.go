package ical

import (
	"fmt"
	"strings"
	"time"

	"github.com/crutrack/RoomTracker/pkg/model"
)

const (
	// DefaultUIDDomain is used when Options.UIDDomain is empty.
	DefaultUIDDomain = "example.com"

	prodID     = "-//UTT//CRU Export//FR"
	timeLayout = "20060102T150405"
)

// Options controls one export run.
type Options struct {
	// Courses keeps only slots of these course codes. Empty keeps all.
	Courses []string
	// PeriodStart and PeriodEnd bound the recurrence period, inclusive.
	PeriodStart time.Time
	PeriodEnd   time.Time
	// UIDDomain is the domain part of generated UIDs.
	UIDDomain string
	// Timestamp is the DTSTAMP shared by all events. Zero means now.
	Timestamp time.Time
}

// Export renders the set as an iCalendar document. Slots whose first
// occurrence falls after the period produce no event; an empty calendar is
// still a valid document.
func Export(set *model.SlotSet, opts Options) (string, error) {
	if opts.PeriodEnd.Before(opts.PeriodStart) {
		return "", fmt.Errorf("period end %s before period start %s",
			opts.PeriodEnd.Format("2006-01-02"), opts.PeriodStart.Format("2006-01-02"))
	}

	uidDomain := opts.UIDDomain
	if uidDomain == "" {
		uidDomain = DefaultUIDDomain
	}
	stamp := opts.Timestamp
	if stamp.IsZero() {
		stamp = time.Now()
	}

	items := set.Filter(keepCourse(opts.Courses)).SortChrono().Slots()

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"CALSCALE:GREGORIAN",
	}
	dtStamp := stamp.Format(timeLayout)
	for i, slot := range items {
		lines = append(lines, slotToVEvent(slot, i, uidDomain, dtStamp, opts.PeriodStart, opts.PeriodEnd)...)
	}
	lines = append(lines, "END:VCALENDAR")

	return strings.Join(lines, "\r\n") + "\r\n", nil
}

func keepCourse(courses []string) func(model.Slot) bool {
	if len(courses) == 0 {
		return func(model.Slot) bool { return true }
	}
	allowed := make(map[string]bool, len(courses))
	for _, c := range courses {
		allowed[c] = true
	}
	return func(s model.Slot) bool { return allowed[s.CourseCode] }
}

// firstOccurrence is the first date on or after periodStart falling on the
// slot's weekday, at the given time of day.
func firstOccurrence(periodStart time.Time, day model.Day, at model.Clock) time.Time {
	delta := (int(day.Weekday()) - int(periodStart.Weekday()) + 7) % 7
	d := periodStart.AddDate(0, 0, delta)
	return time.Date(d.Year(), d.Month(), d.Day(), at.Hour(), at.Minute(), 0, 0, d.Location())
}

func slotToVEvent(slot model.Slot, index int, uidDomain, dtStamp string, periodStart, periodEnd time.Time) []string {
	dtStart := firstOccurrence(periodStart, slot.Day, slot.Start)
	if dtStart.After(periodEnd) {
		return nil
	}
	dtEnd := firstOccurrence(periodStart, slot.Day, slot.End)

	uid := fmt.Sprintf("cru-%s-%s-%s-%d@%s", slot.CourseCode, slot.Day.Code(), slot.Start, index, uidDomain)

	summary := fmt.Sprintf("%s %s", slot.CourseCode, slot.LessonType)
	if slot.Subgroup != "" {
		summary += fmt.Sprintf(" (%s)", slot.Subgroup)
	}

	until := time.Date(periodEnd.Year(), periodEnd.Month(), periodEnd.Day(), 23, 59, 59, 0, periodEnd.Location())

	return []string{
		"BEGIN:VEVENT",
		"UID:" + uid,
		"DTSTAMP:" + dtStamp,
		"DTSTART:" + dtStart.Format(timeLayout),
		"DTEND:" + dtEnd.Format(timeLayout),
		"SUMMARY:" + escapeText(summary),
		"LOCATION:" + escapeText(slot.Room),
		fmt.Sprintf("RRULE:FREQ=WEEKLY;UNTIL=%s;BYDAY=%s", until.Format(timeLayout), slot.Day.ICalCode()),
		"END:VEVENT",
	}
}

var textEscaper = strings.NewReplacer(
	"\\", "\\\\",
	";", "\\;",
	",", "\\,",
	"\r\n", "\\n",
	"\r", "\\n",
	"\n", "\\n",
)

// escapeText escapes a TEXT value per RFC 5545 section 3.3.11.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}
