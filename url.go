package pagesense

import "regexp"

// urlPattern accepts absolute http(s) URLs whose host is a domain name,
// localhost or a dotted quad, followed by an optional port, path, query and
// fragment. Octets of the dotted quad are not range checked.
var urlPattern = regexp.MustCompile(`(?i)^https?://` +
	`((([a-z\d]([a-z\d-]*[a-z\d])*)\.)+[a-z]{2,}|` + // domain name
	`localhost|` +
	`\d{1,3}(\.\d{1,3}){3})` + // IPv4
	`(:\d+)?(/[-a-z\d%_.~+]*)*` + // port and path
	`(\?[;&a-z\d%_.~+=-]*)?` + // query string
	`(#[-a-z\d_]*)?$`) // fragment

// ValidURL reports whether s is a well-formed absolute HTTP or HTTPS URL.
// The check is purely syntactic; no network access takes place.
func ValidURL(s string) bool {
	return urlPattern.MatchString(s)
}
