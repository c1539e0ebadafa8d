// Package timezones holds the IANA zone list that time pickers validate their
// timezone against, a ranked search over it, and a net/http handler answering
// zone queries.
//
// By default the handler serves GET and HEAD with
// {"data":[{"value":...,"label":...}]}. Methods, query extraction, guards and
// the response document are pluggable; the blockkitwiring subpackage uses
// that to serve external select option loads.
package timezones
