// Package catalog defines the product records, query parameters and table state
// shared by the record sources and the selection wizard.
package catalog

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Record is a product returned by a Source. Records are immutable once fetched
// and identified by ID.
type Record struct {
	ID              string   `json:"id" yaml:"id"`
	Title           string   `json:"title" yaml:"title"`
	DescriptionHTML string   `json:"descriptionHtml" yaml:"description_html"`
	ProductType     string   `json:"productType" yaml:"product_type"`
	Vendor          string   `json:"vendor" yaml:"vendor"`
	TotalInventory  int      `json:"totalInventory" yaml:"total_inventory"`
	TotalVariants   int      `json:"totalVariants" yaml:"total_variants"`
	Tags            []string `json:"tags" yaml:"tags"`
	ImageURL        string   `json:"imageUrl,omitempty" yaml:"image_url"`
	ImageAltText    string   `json:"imageAltText,omitempty" yaml:"image_alt_text"`
}

// Collection is a named product collection.
type Collection struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// LegacyID returns the numeric tail of a global ID such as
// "gid://shopify/Product/42". IDs without a slash are returned unchanged.
func (r Record) LegacyID() string {
	return LegacyID(r.ID)
}

// LegacyID returns the last path segment of a global ID.
func LegacyID(gid string) string {
	return gid[strings.LastIndex(gid, "/")+1:]
}

// HasImage reports whether the record carries an image.
func (r Record) HasImage() bool {
	return r.ImageURL != ""
}

// TagList joins the tags for display.
func (r Record) TagList() string {
	return strings.Join(r.Tags, ", ")
}

var descriptionPolicy = bluemonday.StrictPolicy()

// PlainDescription reduces the rich-text description to a single line of
// plain text.
func (r Record) PlainDescription() string {
	return PlainText(r.DescriptionHTML)
}

// PlainText strips markup from s, unescapes entities and collapses whitespace.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	// Block-level closers become spaces so adjacent paragraphs don't run together.
	s = strings.NewReplacer("</p>", " </p>", "<br>", " ", "<br/>", " ", "<br />", " ", "</li>", " </li>").Replace(s)
	text := html.UnescapeString(descriptionPolicy.Sanitize(s))
	return strings.Join(strings.Fields(text), " ")
}
