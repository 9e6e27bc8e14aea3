package davclient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	davxml "github.com/cyp0633/davkit/internal/xml"
)

// CardDAVHandler exposes address book operations for one server.
type CardDAVHandler struct {
	client *Client
}

// NewCardDAVHandler validates cfg and returns a handler bound to it.
func NewCardDAVHandler(cfg ServerConfig, opts ...Option) (*CardDAVHandler, error) {
	client, err := NewClient(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &CardDAVHandler{client: client}, nil
}

// ListAddressBooks discovers the address books under /addressbooks/.
func (h *CardDAVHandler) ListAddressBooks(ctx context.Context) ([]Collection, error) {
	entries, err := h.client.multistatus(ctx, "list address books", Request{
		Method: "PROPFIND",
		Path:   "/addressbooks/",
		Depth:  DepthOne,
		Header: map[string]string{"Content-Type": contentTypeXML},
		Body:   davxml.AddressBookDiscovery().String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list address books: %w", err)
	}
	return collections(entries, "addressbook"), nil
}

// GetContacts returns every contact in the address book.
func (h *CardDAVHandler) GetContacts(ctx context.Context, addressBookPath string) ([]Contact, error) {
	contacts, err := h.query(ctx, "get contacts", addressBookPath, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get contacts: %w", err)
	}
	return contacts, nil
}

// SearchContacts returns the contacts whose FN contains query, compared
// case-insensitively by the server.
func (h *CardDAVHandler) SearchContacts(ctx context.Context, addressBookPath, query string) ([]Contact, error) {
	contacts, err := h.query(ctx, "search contacts", addressBookPath, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts: %w", err)
	}
	return contacts, nil
}

func (h *CardDAVHandler) query(ctx context.Context, op, addressBookPath, match string) ([]Contact, error) {
	query := &davxml.AddressBookQuery{Match: match}
	entries, err := h.client.multistatus(ctx, op, Request{
		Method: "REPORT",
		Path:   addressBookPath,
		Header: map[string]string{
			"Content-Type": contentTypeXML,
			"Depth":        DepthOne,
		},
		Body: query.String(),
	})
	if err != nil {
		return nil, err
	}

	contacts := make([]Contact, 0)
	for _, entry := range entries {
		if entry.DataErr != nil {
			h.client.logger.Warn("skipping unreadable address data", "href", entry.Href, "error", entry.DataErr)
			continue
		}
		contacts = append(contacts, ParseVCard(entry.AddressData)...)
	}
	return contacts, nil
}

// CreateContact stores c as <addressBookPath>/<uid>.vcf and returns that
// path. A contact without a UID gets a random one.
func (h *CardDAVHandler) CreateContact(ctx context.Context, addressBookPath string, c Contact) (string, error) {
	if c.UID == "" {
		c.UID = uuid.New().String()
	}
	contactPath := itemPath(addressBookPath, c.UID, ".vcf")

	_, err := h.client.execute(ctx, "create contact", Request{
		Method: "PUT",
		Path:   contactPath,
		Header: map[string]string{"Content-Type": contentTypeVCard},
		Body:   encodeContact(c),
	}, expectSuccess)
	if err != nil {
		return "", fmt.Errorf("failed to create contact: %w", err)
	}
	return contactPath, nil
}

// DeleteContact removes the contact stored at contactPath.
func (h *CardDAVHandler) DeleteContact(ctx context.Context, contactPath string) error {
	_, err := h.client.execute(ctx, "delete contact", Request{Method: "DELETE", Path: contactPath}, expectSuccess)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}

// TestConnection reports whether the server answers a PROPFIND probe.
func (h *CardDAVHandler) TestConnection(ctx context.Context) bool {
	return h.client.TestConnection(ctx)
}
