package davclient

import (
	"strings"
	"time"
)

const (
	prodID         = "-//davkit//CalDAV Client//EN"
	dateTimeLayout = "20060102T150405Z"
	componentEvent = "VEVENT"
	componentVCard = "VCARD"
	crlf           = "\r\n"
)

// ParseICalendar returns the complete VEVENTs in data, in input order.
//
// The scan is line based: no unfolding, no unescaping. Property parameters
// are dropped from the key and components nested in an event, such as
// VALARM, are skipped. Events missing UID, SUMMARY, DTSTART or DTEND are
// left out.
func ParseICalendar(data string) []CalendarEvent {
	return parseRecords(data, componentEvent, func(ev *CalendarEvent, key, value string) {
		switch key {
		case "UID":
			ev.UID = value
		case "SUMMARY":
			ev.Summary = value
		case "DTSTART":
			ev.Start = value
		case "DTEND":
			ev.End = value
		case "DESCRIPTION":
			ev.Description = value
		case "LOCATION":
			ev.Location = value
		case "STATUS":
			ev.Status = value
		}
	}, CalendarEvent.complete)
}

// ParseVCard returns the complete VCARDs in data, in input order. Cards
// missing UID or FN are left out.
func ParseVCard(data string) []Contact {
	return parseRecords(data, componentVCard, func(c *Contact, key, value string) {
		switch key {
		case "UID":
			c.UID = value
		case "FN":
			c.FN = value
		case "EMAIL":
			c.Email = value
		case "TEL":
			c.Phone = value
		case "ORG":
			c.Organization = value
		}
	}, Contact.complete)
}

func parseRecords[T any](data, component string, set func(*T, string, string), keep func(T) bool) []T {
	records := make([]T, 0)
	begin, end := "BEGIN:"+component, "END:"+component

	var current *T
	nested := 0
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case line == begin:
			current = new(T)
			nested = 0
		case current == nil:
			// outside any record
		case line == end:
			if keep(*current) {
				records = append(records, *current)
			}
			current = nil
		case strings.HasPrefix(line, "BEGIN:"):
			nested++
		case strings.HasPrefix(line, "END:"):
			if nested > 0 {
				nested--
			}
		case nested > 0:
		default:
			key, value, _ := strings.Cut(line, ":")
			if i := strings.IndexByte(key, ';'); i >= 0 {
				key = key[:i]
			}
			set(current, key, value)
		}
	}
	return records
}

// encodeEvent renders ev as a VCALENDAR holding one VEVENT, stamped with now.
func encodeEvent(ev CalendarEvent, now time.Time) string {
	status := ev.Status
	if status == "" {
		status = StatusConfirmed
	}

	var b strings.Builder
	writeLine(&b, "BEGIN", "VCALENDAR")
	writeLine(&b, "VERSION", "2.0")
	writeLine(&b, "PRODID", prodID)
	writeLine(&b, "BEGIN", componentEvent)
	writeLine(&b, "UID", ev.UID)
	writeLine(&b, "DTSTAMP", now.UTC().Format(dateTimeLayout))
	writeLine(&b, "DTSTART", ev.Start)
	writeLine(&b, "DTEND", ev.End)
	writeLine(&b, "SUMMARY", ev.Summary)
	writeOptional(&b, "DESCRIPTION", ev.Description)
	writeOptional(&b, "LOCATION", ev.Location)
	writeLine(&b, "STATUS", status)
	writeLine(&b, "END", componentEvent)
	writeLine(&b, "END", "VCALENDAR")
	return b.String()
}

// encodeContact renders c as a version 3.0 VCARD.
func encodeContact(c Contact) string {
	var b strings.Builder
	writeLine(&b, "BEGIN", componentVCard)
	writeLine(&b, "VERSION", "3.0")
	writeLine(&b, "UID", c.UID)
	writeLine(&b, "FN", c.FN)
	writeOptional(&b, "EMAIL", c.Email)
	writeOptional(&b, "TEL", c.Phone)
	writeOptional(&b, "ORG", c.Organization)
	writeLine(&b, "END", componentVCard)
	return b.String()
}

func writeLine(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteByte(':')
	b.WriteString(value)
	b.WriteString(crlf)
}

func writeOptional(b *strings.Builder, key, value string) {
	if value != "" {
		writeLine(b, key, value)
	}
}
