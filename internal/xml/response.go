package xml

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/samber/mo"
)

// UnknownContentType is reported when a response carries no getcontenttype.
const UnknownContentType = "unknown"

// Resource is one response entry of a multistatus document.
type Resource struct {
	Href         string
	ETag         string
	ContentType  string
	LastModified string
	DisplayName  string
	Description  string
	// ResourceTypes lists the local names of the resourcetype children,
	// e.g. "collection", "calendar". Nil when no resourcetype was returned.
	ResourceTypes []string

	// CalendarData and AddressData hold the embedded payload text.
	CalendarData string
	AddressData  string

	// DataErr is set when an embedded payload was present but not readable
	// as text. The rest of the resource is still valid.
	DataErr error
}

// HasResourceType reports whether the resourcetype prop lists local.
func (r Resource) HasResourceType(local string) bool {
	for _, t := range r.ResourceTypes {
		if t == local {
			return true
		}
	}
	return false
}

// ParseMultistatus parses a multistatus body into resources in document
// order. A document whose root is not multistatus yields no resources and no
// error; malformed XML, including a body without any root element, is an
// error.
func ParseMultistatus(body string) ([]Resource, error) {
	resources := make([]Resource, 0)
	if strings.TrimSpace(body) == "" {
		return resources, nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil, fmt.Errorf("failed to parse multistatus XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, errors.New("failed to parse multistatus XML: no root element")
	}
	if !nameMultistatus.matches(root) {
		return resources, nil
	}

	for _, respElem := range selectAll(root, nameResponse) {
		href, ok := lookupAny(respElem, nameHref).Get()
		if !ok {
			continue
		}
		propstat, ok := lookupAny(respElem, namePropstat).Get()
		if !ok {
			continue
		}

		resource := Resource{
			Href:        strings.TrimSpace(href.Text()),
			ContentType: UnknownContentType,
		}

		prop, ok := lookupAny(propstat, nameProp).Get()
		if ok {
			resource.parseProp(prop)
		}
		resources = append(resources, resource)
	}

	return resources, nil
}

func (r *Resource) parseProp(prop *etree.Element) {
	r.ETag = textOf(prop, nameGetETag)
	r.LastModified = textOf(prop, nameGetLastModified)
	r.DisplayName = textOf(prop, nameDisplayName)
	r.Description = textOf(prop, nameCalendarDescription, nameAddressBookDescription)
	if ct := textOf(prop, nameGetContentType); ct != "" {
		r.ContentType = ct
	}

	if rt, ok := lookupAny(prop, nameResourceType).Get(); ok {
		r.ResourceTypes = make([]string, 0)
		for _, child := range rt.ChildElements() {
			r.ResourceTypes = append(r.ResourceTypes, child.Tag)
		}
	}

	var calErr, cardErr error
	if elem, ok := lookupAny(prop, nameCalendarData).Get(); ok {
		r.CalendarData, calErr = payloadText(elem)
	}
	if elem, ok := lookupAny(prop, nameAddressData).Get(); ok {
		r.AddressData, cardErr = payloadText(elem)
	}
	r.DataErr = errors.Join(calErr, cardErr)
}

// lookupAny returns the first child of elem matching any of the names, tried
// in order.
func lookupAny(elem *etree.Element, names ...qname) mo.Option[*etree.Element] {
	if elem == nil {
		return mo.None[*etree.Element]()
	}
	for _, name := range names {
		for _, child := range elem.ChildElements() {
			if name.matches(child) {
				return mo.Some(child)
			}
		}
	}
	return mo.None[*etree.Element]()
}

func selectAll(elem *etree.Element, name qname) []*etree.Element {
	var out []*etree.Element
	for _, child := range elem.ChildElements() {
		if name.matches(child) {
			out = append(out, child)
		}
	}
	return out
}

func textOf(elem *etree.Element, names ...qname) string {
	found, ok := lookupAny(elem, names...).Get()
	if !ok {
		return ""
	}
	return strings.TrimSpace(found.Text())
}

// payloadText returns the character data of a calendar-data or address-data
// element. Payloads that arrive as nested elements instead of text are
// reported as an error.
func payloadText(elem *etree.Element) (string, error) {
	text := elem.Text()
	if strings.TrimSpace(text) == "" && len(elem.ChildElements()) > 0 {
		return "", fmt.Errorf("%s is structured, expected text content", elem.Tag)
	}
	return text, nil
}
