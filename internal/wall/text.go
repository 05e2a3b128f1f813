package wall

import "regexp"

// Compiled once at startup; the transformer stages run in a fixed order.
var (
	// Matches a protocol-qualified URL in plain text. The boundary
	// groups keep a sentence-ending period outside the anchor.
	textURLRE = regexp.MustCompile(`(^|\s|>)(https?://[^"]+?)(\.?(?:<|\s|$))`)

	// Matches a domain-like URL without protocol specification.
	domainOnlyURLRE = regexp.MustCompile(`(^|\s|>)((?:[a-z0-9](?:[-a-z0-9]*[a-z0-9])?\.)+[a-z0-9](?:[-a-z0-9]*[a-z0-9])/[^"]+?)(\.?(?:<|\s|$))`)

	// Matches a user or group mention token in a post text.
	mentionRE = regexp.MustCompile(`\[((?:id|club)\d+)\|([^\]]+)\]`)
)

// Transform turns a raw post text into HTML: bare URLs become anchors
// and mention tokens become bold profile links. Mention rewriting runs
// last; the tokens never contain URLs themselves.
func (r *Renderer) Transform(text string) string {
	text = textURLRE.ReplaceAllString(text, `$1<a href="$2">$2</a>$3`)
	text = domainOnlyURLRE.ReplaceAllString(text, `$1<a href="http://$2">$2</a>$3`)
	text = mentionRE.ReplaceAllString(text, `<b><a href="`+r.siteURL+`$1">$2</a></b>`)
	return text
}
