package xml

import (
	"github.com/beevik/etree"
)

// PropfindRequest represents a PROPFIND request body. Props are written in
// order as "prefix:local" names, e.g. "d:displayname".
type PropfindRequest struct {
	Namespaces []string
	Props      []string
}

// CalendarDiscovery is the PROPFIND body used to list calendar collections.
func CalendarDiscovery() *PropfindRequest {
	return &PropfindRequest{
		Namespaces: []string{PrefixDAV, PrefixCalDAV, PrefixCalendarServer},
		Props: []string{
			"d:displayname",
			"d:resourcetype",
			"c:calendar-description",
			"c:supported-calendar-component-set",
		},
	}
}

// AddressBookDiscovery is the PROPFIND body used to list address books.
func AddressBookDiscovery() *PropfindRequest {
	return &PropfindRequest{
		Namespaces: []string{PrefixDAV, PrefixCardDAV},
		Props: []string{
			"d:displayname",
			"d:resourcetype",
			"card:addressbook-description",
			"card:supported-address-data",
		},
	}
}

// ConnectionProbe is the minimal PROPFIND body used to test a server.
func ConnectionProbe() *PropfindRequest {
	return &PropfindRequest{
		Namespaces: []string{PrefixDAV},
		Props:      []string{"d:displayname", "d:resourcetype"},
	}
}

// ResourceListing is the PROPFIND body used for generic collection listings.
func ResourceListing() *PropfindRequest {
	return &PropfindRequest{
		Namespaces: []string{PrefixDAV},
		Props: []string{
			"d:displayname",
			"d:resourcetype",
			"d:getetag",
			"d:getcontenttype",
			"d:getlastmodified",
		},
	}
}

// ToXML converts a PropfindRequest to an XML document
func (r *PropfindRequest) ToXML() *etree.Document {
	doc := newDocument()
	root := doc.CreateElement("d:propfind")
	AddNamespaces(doc, r.Namespaces...)

	prop := root.CreateElement("d:prop")
	for _, name := range r.Props {
		prop.CreateElement(name)
	}
	return doc
}

// String renders the request body.
func (r *PropfindRequest) String() string {
	return render(r.ToXML())
}

// CalendarQuery represents a calendar-query REPORT over VEVENT components.
// The time-range element is written only when both bounds are set.
type CalendarQuery struct {
	Start string
	End   string
}

// ToXML converts a CalendarQuery to an XML document
func (q *CalendarQuery) ToXML() *etree.Document {
	doc := newDocument()
	root := doc.CreateElement("c:calendar-query")
	AddNamespaces(doc, PrefixDAV, PrefixCalDAV)

	prop := root.CreateElement("d:prop")
	prop.CreateElement("d:getetag")
	prop.CreateElement("c:calendar-data")

	filter := root.CreateElement("c:filter")
	calendar := filter.CreateElement("c:comp-filter")
	calendar.CreateAttr("name", "VCALENDAR")
	event := calendar.CreateElement("c:comp-filter")
	event.CreateAttr("name", "VEVENT")

	if q.Start != "" && q.End != "" {
		tr := event.CreateElement("c:time-range")
		tr.CreateAttr("start", q.Start)
		tr.CreateAttr("end", q.End)
	}
	return doc
}

// String renders the request body.
func (q *CalendarQuery) String() string {
	return render(q.ToXML())
}

// AddressBookQuery represents an addressbook-query REPORT filtering on FN.
// An empty Match selects every card.
type AddressBookQuery struct {
	Match string
}

// ToXML converts an AddressBookQuery to an XML document
func (q *AddressBookQuery) ToXML() *etree.Document {
	doc := newDocument()
	root := doc.CreateElement("card:addressbook-query")
	AddNamespaces(doc, PrefixDAV, PrefixCardDAV)

	prop := root.CreateElement("d:prop")
	prop.CreateElement("d:getetag")
	prop.CreateElement("card:address-data")

	filter := root.CreateElement("card:filter")
	propFilter := filter.CreateElement("card:prop-filter")
	propFilter.CreateAttr("name", "FN")

	if q.Match != "" {
		textMatch := propFilter.CreateElement("card:text-match")
		textMatch.CreateAttr("collation", "i;unicode-casemap")
		textMatch.SetText(q.Match)
	}
	return doc
}

// String renders the request body.
func (q *AddressBookQuery) String() string {
	return render(q.ToXML())
}

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	return doc
}

func render(doc *etree.Document) string {
	doc.Indent(2)
	s, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}
