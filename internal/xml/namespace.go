package xml

import "github.com/beevik/etree"

// Namespace definitions for WebDAV, CalDAV and CardDAV
const (
	// DAV is the WebDAV namespace
	DAV = "DAV:"
	// CalDAV is the CalDAV namespace
	CalDAV = "urn:ietf:params:xml:ns:caldav"
	// CardDAV is the CardDAV namespace
	CardDAV = "urn:ietf:params:xml:ns:carddav"
	// CalendarServer is the Calendar Server namespace (used by some implementations)
	CalendarServer = "http://calendarserver.org/ns/"
)

// Prefixes used when writing request bodies.
const (
	PrefixDAV            = "d"
	PrefixCalDAV         = "c"
	PrefixCardDAV        = "card"
	PrefixCalendarServer = "cs"
)

var prefixNamespaces = map[string]string{
	PrefixDAV:            DAV,
	PrefixCalDAV:         CalDAV,
	PrefixCardDAV:        CardDAV,
	PrefixCalendarServer: CalendarServer,
}

// AddNamespaces declares the namespaces bound to the given prefixes on the
// document root, in argument order. Unknown prefixes are ignored.
func AddNamespaces(doc *etree.Document, prefixes ...string) {
	root := doc.Root()
	if root == nil {
		return
	}
	for _, prefix := range prefixes {
		if ns, ok := prefixNamespaces[prefix]; ok {
			root.CreateAttr("xmlns:"+prefix, ns)
		}
	}
}

// qname is a namespace-qualified element name.
type qname struct {
	Space string
	Local string
}

// Logical names looked up in multistatus documents.
var (
	nameMultistatus     = qname{DAV, "multistatus"}
	nameResponse        = qname{DAV, "response"}
	nameHref            = qname{DAV, "href"}
	namePropstat        = qname{DAV, "propstat"}
	nameProp            = qname{DAV, "prop"}
	nameGetETag         = qname{DAV, "getetag"}
	nameGetContentType  = qname{DAV, "getcontenttype"}
	nameGetLastModified = qname{DAV, "getlastmodified"}
	nameDisplayName     = qname{DAV, "displayname"}
	nameResourceType    = qname{DAV, "resourcetype"}

	nameCalendarData           = qname{CalDAV, "calendar-data"}
	nameCalendarDescription    = qname{CalDAV, "calendar-description"}
	nameAddressData            = qname{CardDAV, "address-data"}
	nameAddressBookDescription = qname{CardDAV, "addressbook-description"}
)

// matches reports whether elem is the element named n. An element without a
// resolvable namespace matches on local name alone, which covers documents
// that use bare names or forget to declare their prefixes.
func (n qname) matches(elem *etree.Element) bool {
	if elem == nil || elem.Tag != n.Local {
		return false
	}
	ns := elem.NamespaceURI()
	return ns == "" || ns == n.Space
}
