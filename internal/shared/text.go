package shared

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	nonWordOrSpace = regexp.MustCompile(`[^\w\s]`)
	catalogLinkRe  = regexp.MustCompile(`(?i)^(https?://)?(www\.)?jiosaavn\.com/(song|shows|album|artist|featured)/.+$`)
)

// Slugify converts a display title into a URL-safe identifier: lower-cased,
// punctuation stripped, spaces replaced with hyphens. Consecutive spaces
// surface as consecutive hyphens; the web client produces the same slugs, so
// this is kept byte-for-byte compatible rather than tidied up.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = nonWordOrSpace.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, " ", "-")
}

// IsValidCatalogLink reports whether s is a recognized jiosaavn.com share
// link: optional protocol and www, one of the five content path segments,
// and a non-empty remainder.
func IsValidCatalogLink(s string) bool {
	return catalogLinkRe.MatchString(s)
}

// EncodeOpaque encodes an arbitrary string into a reversible, URL-safe
// transport form: percent-encoding followed by base64.
func EncodeOpaque(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(url.QueryEscape(s)))
}

// DecodeOpaque is the exact inverse of [EncodeOpaque].
func DecodeOpaque(s string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("decode opaque: %w", err)
	}

	decoded, err := url.QueryUnescape(string(raw))
	if err != nil {
		return "", fmt.Errorf("decode opaque: %w", err)
	}

	return decoded, nil
}

// DecodeEntities parses s as HTML markup and returns the concatenated text
// content with entities decoded. Catalog titles regularly embed entities
// like &amp; and &#039;. Returns the empty string when parsing yields no
// text nodes.
func DecodeEntities(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return ""
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return b.String()
}
