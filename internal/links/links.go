// Package links canonicalizes absolute links to the published site into
// Jekyll relative_url expressions, so pages keep working when the site is
// served under a different base URL.
package links

import "regexp"

var reSiteLink = regexp.MustCompile(`http[s]://lost-stats.github.io(/[a-zA-Z0-9/#-&=+_%.]*)`)

// Fix rewrites every https://lost-stats.github.io/<path> link in the
// document into {{ "/<path>" | relative_url }}.
func Fix(source []byte) []byte {
	return reSiteLink.ReplaceAll(source, []byte(`{{ "$1" | relative_url }}`))
}
