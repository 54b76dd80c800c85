package ical

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

// Event is one VEVENT read back from an exported document.
type Event struct {
	UID      string    `json:"uid"`
	Summary  string    `json:"summary"`
	Location string    `json:"location"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	RRule    string    `json:"rrule"`
}

// ReadEvents parses iCalendar text into event values.
func ReadEvents(data string) ([]Event, error) {
	cal, err := ics.ParseCalendar(strings.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	events := []Event{}
	for _, ve := range cal.Events() {
		if ve == nil {
			continue
		}
		ev := Event{
			UID:      propValue(ve, ics.ComponentPropertyUniqueId),
			Summary:  unescapeText(propValue(ve, ics.ComponentPropertySummary)),
			Location: unescapeText(propValue(ve, ics.ComponentPropertyLocation)),
			RRule:    propValue(ve, ics.ComponentPropertyRrule),
		}
		if v := propValue(ve, ics.ComponentPropertyDtStart); v != "" {
			t, err := time.Parse(timeLayout, v)
			if err != nil {
				return nil, fmt.Errorf("parsing event start time: %w", err)
			}
			ev.Start = t
		}
		if v := propValue(ve, ics.ComponentPropertyDtEnd); v != "" {
			t, err := time.Parse(timeLayout, v)
			if err != nil {
				return nil, fmt.Errorf("parsing event end time: %w", err)
			}
			ev.End = t
		}
		events = append(events, ev)
	}
	return events, nil
}

func propValue(ve *ics.VEvent, prop ics.ComponentProperty) string {
	p := ve.GetProperty(prop)
	if p == nil {
		return ""
	}
	return p.Value
}

var textUnescaper = strings.NewReplacer(
	"\\\\", "\\",
	"\\;", ";",
	"\\,", ",",
	"\\n", "\n",
	"\\N", "\n",
)

func unescapeText(s string) string {
	return textUnescaper.Replace(s)
}
