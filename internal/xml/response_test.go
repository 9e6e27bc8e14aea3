package xml

import (
	"reflect"
	"strings"
	"testing"
)

const twoEventMultistatus = `<?xml version="1.0" encoding="utf-8"?>
<d:multistatus xmlns:d="DAV:" xmlns:c="urn:ietf:params:xml:ns:caldav">
  <d:response>
    <d:href>/calendars/user/work/event-1.ics</d:href>
    <d:propstat>
      <d:prop>
        <d:getetag>"etag-1"</d:getetag>
        <c:calendar-data>BEGIN:VCALENDAR
BEGIN:VEVENT
UID:event-1
DTSTART:20231201T100000Z
DTEND:20231201T110000Z
SUMMARY:First Event
END:VEVENT
END:VCALENDAR</c:calendar-data>
      </d:prop>
      <d:status>HTTP/1.1 200 OK</d:status>
    </d:propstat>
  </d:response>
  <d:response>
    <d:href>/calendars/user/work/event-2.ics</d:href>
    <d:propstat>
      <d:prop>
        <d:getetag>"etag-2"</d:getetag>
        <c:calendar-data><![CDATA[BEGIN:VCALENDAR
BEGIN:VEVENT
UID:event-2
DTSTART:20231201T140000Z
DTEND:20231201T150000Z
SUMMARY:Second Event
END:VEVENT
END:VCALENDAR]]></c:calendar-data>
      </d:prop>
      <d:status>HTTP/1.1 200 OK</d:status>
    </d:propstat>
  </d:response>
</d:multistatus>`

func TestParseMultistatus(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []Resource
		wantErr bool
	}{
		{
			name: "prefixed names with full props",
			body: `<?xml version="1.0" encoding="utf-8"?>
<d:multistatus xmlns:d="DAV:" xmlns:c="urn:ietf:params:xml:ns:caldav">
  <d:response>
    <d:href>/calendars/user/work/</d:href>
    <d:propstat>
      <d:prop>
        <d:displayname>Work</d:displayname>
        <d:resourcetype><d:collection/><c:calendar/></d:resourcetype>
        <c:calendar-description>Office events</c:calendar-description>
        <d:getetag>"abc"</d:getetag>
        <d:getcontenttype>text/calendar</d:getcontenttype>
        <d:getlastmodified>Mon, 01 Jan 2024 12:00:00 GMT</d:getlastmodified>
      </d:prop>
      <d:status>HTTP/1.1 200 OK</d:status>
    </d:propstat>
  </d:response>
</d:multistatus>`,
			want: []Resource{{
				Href:          "/calendars/user/work/",
				ETag:          `"abc"`,
				ContentType:   "text/calendar",
				LastModified:  "Mon, 01 Jan 2024 12:00:00 GMT",
				DisplayName:   "Work",
				Description:   "Office events",
				ResourceTypes: []string{"collection", "calendar"},
			}},
		},
		{
			name: "bare names with default namespace",
			body: `<multistatus xmlns="DAV:">
  <response>
    <href>/files/a.txt</href>
    <propstat><prop><getetag>"1"</getetag></prop></propstat>
  </response>
</multistatus>`,
			want: []Resource{{
				Href:        "/files/a.txt",
				ETag:        `"1"`,
				ContentType: UnknownContentType,
			}},
		},
		{
			name: "bare names without any namespace",
			body: `<multistatus><response><href>/x</href><propstat><prop><getcontenttype>text/vcard</getcontenttype></prop></propstat></response></multistatus>`,
			want: []Resource{{
				Href:        "/x",
				ContentType: "text/vcard",
			}},
		},
		{
			name: "single response is a one element sequence",
			body: `<D:multistatus xmlns:D="DAV:"><D:response><D:href>/only</D:href><D:propstat><D:prop/></D:propstat></D:response></D:multistatus>`,
			want: []Resource{{Href: "/only", ContentType: UnknownContentType}},
		},
		{
			name: "entries without href or propstat are skipped",
			body: `<d:multistatus xmlns:d="DAV:">
  <d:response><d:propstat><d:prop><d:getetag>"x"</d:getetag></d:prop></d:propstat></d:response>
  <d:response><d:href>/no-propstat</d:href><d:status>HTTP/1.1 404 Not Found</d:status></d:response>
  <d:response><d:href>/kept</d:href><d:propstat><d:prop/></d:propstat></d:response>
</d:multistatus>`,
			want: []Resource{{Href: "/kept", ContentType: UnknownContentType}},
		},
		{
			name: "first propstat wins",
			body: `<d:multistatus xmlns:d="DAV:"><d:response><d:href>/a</d:href>
<d:propstat><d:prop><d:getetag>"first"</d:getetag></d:prop><d:status>HTTP/1.1 200 OK</d:status></d:propstat>
<d:propstat><d:prop><d:getetag>"second"</d:getetag></d:prop><d:status>HTTP/1.1 404 Not Found</d:status></d:propstat>
</d:response></d:multistatus>`,
			want: []Resource{{Href: "/a", ETag: `"first"`, ContentType: UnknownContentType}},
		},
		{
			name: "foreign namespace on a property is not matched",
			body: `<d:multistatus xmlns:d="DAV:" xmlns:x="urn:example"><d:response><d:href>/a</d:href>
<d:propstat><d:prop><x:getetag>"nope"</x:getetag></d:prop></d:propstat></d:response></d:multistatus>`,
			want: []Resource{{Href: "/a", ContentType: UnknownContentType}},
		},
		{
			name: "root other than multistatus yields nothing",
			body: `<d:error xmlns:d="DAV:"><d:status>HTTP/1.1 403 Forbidden</d:status></d:error>`,
			want: []Resource{},
		},
		{
			name: "empty multistatus yields nothing",
			body: `<d:multistatus xmlns:d="DAV:"/>`,
			want: []Resource{},
		},
		{
			name: "empty body yields nothing",
			body: "  ",
			want: []Resource{},
		},
		{
			name:    "plain text is an error",
			body:    "not xml at all",
			wantErr: true,
		},
		{
			name:    "html error page text is an error",
			body:    "Internal Server Error",
			wantErr: true,
		},
		{
			name:    "truncated document is an error",
			body:    `<d:multistatus xmlns:d="DAV:"><d:response><d:href>/a</d:href>`,
			wantErr: true,
		},
		{
			name:    "mismatched tags are an error",
			body:    `<d:multistatus xmlns:d="DAV:"><d:response></d:multistatus>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMultistatus(tt.body)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMultistatus() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseMultistatus() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseMultistatus_CalendarData(t *testing.T) {
	got, err := ParseMultistatus(twoEventMultistatus)
	if err != nil {
		t.Fatalf("ParseMultistatus() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d resources, want 2", len(got))
	}

	for i, uid := range []string{"event-1", "event-2"} {
		if !strings.Contains(got[i].CalendarData, "UID:"+uid) {
			t.Errorf("resource %d calendar data = %q, want UID %s", i, got[i].CalendarData, uid)
		}
		if got[i].DataErr != nil {
			t.Errorf("resource %d DataErr = %v", i, got[i].DataErr)
		}
	}
	if got[1].ETag != `"etag-2"` {
		t.Errorf("second etag = %s", got[1].ETag)
	}
}

func TestParseMultistatus_AddressData(t *testing.T) {
	body := `<d:multistatus xmlns:d="DAV:" xmlns:card="urn:ietf:params:xml:ns:carddav">
<d:response><d:href>/addressbooks/u/c1.vcf</d:href><d:propstat><d:prop>
<card:address-data>BEGIN:VCARD&#13;
UID:c1&#13;
FN:John Doe&#13;
END:VCARD</card:address-data>
</d:prop></d:propstat></d:response></d:multistatus>`

	got, err := ParseMultistatus(body)
	if err != nil {
		t.Fatalf("ParseMultistatus() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d resources, want 1", len(got))
	}
	if !strings.Contains(got[0].AddressData, "FN:John Doe\r\n") {
		t.Errorf("address data = %q", got[0].AddressData)
	}
}

func TestParseMultistatus_StructuredPayload(t *testing.T) {
	body := `<d:multistatus xmlns:d="DAV:" xmlns:c="urn:ietf:params:xml:ns:caldav">
<d:response><d:href>/cal/odd.ics</d:href><d:propstat><d:prop>
<d:getetag>"odd"</d:getetag>
<c:calendar-data><c:comp name="VCALENDAR"/></c:calendar-data>
</d:prop></d:propstat></d:response></d:multistatus>`

	got, err := ParseMultistatus(body)
	if err != nil {
		t.Fatalf("ParseMultistatus() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d resources, want 1", len(got))
	}
	if got[0].DataErr == nil {
		t.Error("expected DataErr for structured calendar-data")
	}
	if got[0].ETag != `"odd"` {
		t.Errorf("etag = %s, want \"odd\"", got[0].ETag)
	}
}

func TestResource_HasResourceType(t *testing.T) {
	r := Resource{ResourceTypes: []string{"collection", "addressbook"}}
	if !r.HasResourceType("addressbook") {
		t.Error("expected addressbook resource type")
	}
	if r.HasResourceType("calendar") {
		t.Error("unexpected calendar resource type")
	}
}

func TestParseMultistatus_BothPayloadsStructured(t *testing.T) {
	body := `<d:multistatus xmlns:d="DAV:" xmlns:c="urn:ietf:params:xml:ns:caldav" xmlns:card="urn:ietf:params:xml:ns:carddav">
<d:response><d:href>/mixed</d:href><d:propstat><d:prop>
<c:calendar-data><c:comp name="VCALENDAR"/></c:calendar-data>
<card:address-data>BEGIN:VCARD
END:VCARD</card:address-data>
</d:prop></d:propstat></d:response></d:multistatus>`

	got, err := ParseMultistatus(body)
	if err != nil {
		t.Fatalf("ParseMultistatus() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d resources, want 1", len(got))
	}
	if got[0].DataErr == nil || !strings.Contains(got[0].DataErr.Error(), "calendar-data") {
		t.Errorf("DataErr = %v, want calendar-data error kept", got[0].DataErr)
	}
	if !strings.Contains(got[0].AddressData, "BEGIN:VCARD") {
		t.Errorf("address data = %q", got[0].AddressData)
	}
}
