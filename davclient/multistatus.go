package davclient

import (
	"context"
	"path"
	"strings"

	davxml "github.com/cyp0633/davkit/internal/xml"
)

// multistatus executes req, requires a 207 and parses the body.
func (c *Client) multistatus(ctx context.Context, op string, req Request) ([]davxml.Resource, error) {
	resp, err := c.execute(ctx, op, req, expectMultiStatus)
	if err != nil {
		return nil, err
	}
	entries, err := davxml.ParseMultistatus(resp.Body)
	if err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}
	return entries, nil
}

func toResource(entry davxml.Resource) Resource {
	return Resource{
		Href:          entry.Href,
		ETag:          entry.ETag,
		ContentType:   entry.ContentType,
		LastModified:  entry.LastModified,
		DisplayName:   entry.DisplayName,
		Description:   entry.Description,
		ResourceTypes: entry.ResourceTypes,
	}
}

// collections keeps the entries that look like collections of the given
// kind. A resourcetype prop is authoritative when the server returned one;
// otherwise the content type or href must mention kind.
func collections(entries []davxml.Resource, kind string) []Collection {
	out := make([]Collection, 0)
	for _, entry := range entries {
		if entry.ResourceTypes != nil {
			if !entry.HasResourceType(kind) {
				continue
			}
		} else if !strings.Contains(entry.ContentType, kind) && !strings.Contains(entry.Href, kind) {
			continue
		}

		out = append(out, Collection{
			Name:        collectionName(entry.Href),
			Href:        entry.Href,
			DisplayName: entry.DisplayName,
			Description: entry.Description,
		})
	}
	return out
}

func collectionName(href string) string {
	name := path.Base(strings.TrimRight(href, "/"))
	if name == "." || name == "/" || name == "" {
		return "Unknown"
	}
	return name
}
