package davclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	davxml "github.com/cyp0633/davkit/internal/xml"
)

// CalDAVHandler exposes calendar operations for one server. Discovery and
// queries require a 207 Multi-Status reply, mutations any 2xx.
type CalDAVHandler struct {
	client *Client
	now    func() time.Time
}

// NewCalDAVHandler validates cfg and returns a handler bound to it.
func NewCalDAVHandler(cfg ServerConfig, opts ...Option) (*CalDAVHandler, error) {
	client, err := NewClient(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &CalDAVHandler{client: client, now: time.Now}, nil
}

// ListCalendars discovers the calendar collections under /calendars/.
func (h *CalDAVHandler) ListCalendars(ctx context.Context) ([]Collection, error) {
	entries, err := h.client.multistatus(ctx, "list calendars", Request{
		Method: "PROPFIND",
		Path:   "/calendars/",
		Depth:  DepthOne,
		Header: map[string]string{"Content-Type": contentTypeXML},
		Body:   davxml.CalendarDiscovery().String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}
	return collections(entries, "calendar"), nil
}

// GetEvents runs a calendar-query REPORT on calendarPath. The time range is
// sent only when both start and end are given, as UTC date-times in the
// form 20231201T000000Z.
func (h *CalDAVHandler) GetEvents(ctx context.Context, calendarPath, start, end string) ([]CalendarEvent, error) {
	query := &davxml.CalendarQuery{Start: start, End: end}
	entries, err := h.client.multistatus(ctx, "get events", Request{
		Method: "REPORT",
		Path:   calendarPath,
		Header: map[string]string{
			"Content-Type": contentTypeXML,
			"Depth":        DepthOne,
		},
		Body: query.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	events := make([]CalendarEvent, 0)
	for _, entry := range entries {
		if entry.DataErr != nil {
			h.client.logger.Warn("skipping unreadable calendar data", "href", entry.Href, "error", entry.DataErr)
			continue
		}
		events = append(events, ParseICalendar(entry.CalendarData)...)
	}
	return events, nil
}

// GetEventsBetween is GetEvents with the bounds given as times.
func (h *CalDAVHandler) GetEventsBetween(ctx context.Context, calendarPath string, start, end time.Time) ([]CalendarEvent, error) {
	return h.GetEvents(ctx, calendarPath, start.UTC().Format(dateTimeLayout), end.UTC().Format(dateTimeLayout))
}

// CreateEvent stores ev as <calendarPath>/<uid>.ics and returns that path.
// An event without a UID gets a random one.
func (h *CalDAVHandler) CreateEvent(ctx context.Context, calendarPath string, ev CalendarEvent) (string, error) {
	if ev.UID == "" {
		ev.UID = uuid.New().String()
	}
	eventPath := itemPath(calendarPath, ev.UID, ".ics")

	_, err := h.client.execute(ctx, "create event", Request{
		Method: "PUT",
		Path:   eventPath,
		Header: map[string]string{"Content-Type": contentTypeCalendar},
		Body:   encodeEvent(ev, h.now()),
	}, expectSuccess)
	if err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}
	return eventPath, nil
}

// CreateICalEvent stores a go-ical event, see CreateEvent.
func (h *CalDAVHandler) CreateICalEvent(ctx context.Context, calendarPath string, ev *ical.Event) (string, error) {
	return h.CreateEvent(ctx, calendarPath, EventFromICal(ev))
}

// DeleteEvent removes the event stored at eventPath.
func (h *CalDAVHandler) DeleteEvent(ctx context.Context, eventPath string) error {
	_, err := h.client.execute(ctx, "delete event", Request{Method: "DELETE", Path: eventPath}, expectSuccess)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// TestConnection reports whether the server answers a PROPFIND probe.
func (h *CalDAVHandler) TestConnection(ctx context.Context) bool {
	return h.client.TestConnection(ctx)
}

func itemPath(collectionPath, uid, ext string) string {
	return strings.TrimSuffix(collectionPath, "/") + "/" + uid + ext
}
