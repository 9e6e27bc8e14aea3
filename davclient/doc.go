// Package davclient talks to CalDAV, CardDAV and plain WebDAV servers.
//
// A Client executes raw requests against one configured server. Two thin
// layers sit on top of it: CalDAVHandler and CardDAVHandler turn calendar
// and address book operations into PROPFIND, REPORT, PUT and DELETE
// exchanges and reject unexpected status codes, while Forwarder passes any
// request through and returns whatever the server answered.
//
// Records travel as simple line-oriented iCalendar and vCard text; values
// are neither folded nor escaped.
package davclient
