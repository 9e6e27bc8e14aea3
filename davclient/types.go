package davclient

// Depth values for PROPFIND requests.
const (
	DepthZero     = "0"
	DepthOne      = "1"
	DepthInfinity = "infinity"
)

// Event statuses. An empty status is written as StatusConfirmed.
const (
	StatusConfirmed = "CONFIRMED"
	StatusTentative = "TENTATIVE"
	StatusCancelled = "CANCELLED"
)

// Request describes one DAV exchange. Path is relative to the server's base
// URL unless it is itself an absolute http(s) URL.
type Request struct {
	Method string            `json:"method"`
	Path   string            `json:"path"`
	Header map[string]string `json:"headers,omitempty"`
	Body   string            `json:"body,omitempty"`
	// Depth is sent as the Depth header on PROPFIND requests.
	Depth string `json:"depth,omitempty"`
}

// Response is a completed DAV exchange, whatever its status. Header keys are
// lower-cased and repeated values are joined with ", ".
type Response struct {
	StatusCode int               `json:"status"`
	Status     string            `json:"statusText,omitempty"`
	Header     map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// Resource is one entry of a multistatus listing.
type Resource struct {
	Href          string   `json:"href"`
	ETag          string   `json:"etag,omitempty"`
	ContentType   string   `json:"contentType"`
	LastModified  string   `json:"lastModified,omitempty"`
	DisplayName   string   `json:"displayName,omitempty"`
	Description   string   `json:"description,omitempty"`
	ResourceTypes []string `json:"resourceTypes,omitempty"`
}

// Collection is a calendar or address book found by discovery.
type Collection struct {
	Name        string `json:"name"`
	Href        string `json:"href"`
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`
}

// CalendarEvent is a single VEVENT. UID, Summary, Start and End are required;
// Start and End keep the raw DTSTART/DTEND values.
type CalendarEvent struct {
	UID         string `json:"uid"`
	Summary     string `json:"summary"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Status      string `json:"status,omitempty"`
}

func (e CalendarEvent) complete() bool {
	return e.UID != "" && e.Summary != "" && e.Start != "" && e.End != ""
}

// Contact is a single VCARD. UID and FN are required.
type Contact struct {
	UID          string `json:"uid"`
	FN           string `json:"fn"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Organization string `json:"organization,omitempty"`
}

func (c Contact) complete() bool {
	return c.UID != "" && c.FN != ""
}
