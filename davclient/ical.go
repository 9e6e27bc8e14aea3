package davclient

import (
	"github.com/emersion/go-ical"
)

// EventFromICal converts a go-ical event. DTSTART and DTEND keep their raw
// values; text properties are unescaped.
func EventFromICal(ev *ical.Event) CalendarEvent {
	return CalendarEvent{
		UID:         rawProp(ev, ical.PropUID),
		Summary:     textProp(ev, ical.PropSummary),
		Start:       rawProp(ev, ical.PropDateTimeStart),
		End:         rawProp(ev, ical.PropDateTimeEnd),
		Description: textProp(ev, ical.PropDescription),
		Location:    textProp(ev, ical.PropLocation),
		Status:      rawProp(ev, ical.PropStatus),
	}
}

func rawProp(ev *ical.Event, name string) string {
	if prop := ev.Props.Get(name); prop != nil {
		return prop.Value
	}
	return ""
}

func textProp(ev *ical.Event, name string) string {
	prop := ev.Props.Get(name)
	if prop == nil {
		return ""
	}
	text, err := prop.Text()
	if err != nil {
		return prop.Value
	}
	return text
}
