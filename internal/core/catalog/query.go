package catalog

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record or collection does not exist.
var ErrNotFound = errors.New("not found")

// PageSize is the fixed number of records requested from a Source.
const PageSize = 50

// SortKey is the server-side ordering of a product query.
type SortKey string

// Supported sort keys.
const (
	SortTitle          SortKey = "TITLE"
	SortInventoryTotal SortKey = "INVENTORY_TOTAL"
	SortProductType    SortKey = "PRODUCT_TYPE"
	SortVendor         SortKey = "VENDOR"
)

// IsValid reports whether k is a supported sort key.
func (k SortKey) IsValid() bool {
	switch k {
	case SortTitle, SortInventoryTotal, SortProductType, SortVendor:
		return true
	default:
		return false
	}
}

// SortKeyForColumn maps a selection table column index to a server sort key.
// Columns 3, 4 and 5 are inventory, type and vendor; everything else sorts by title.
func SortKeyForColumn(column int) SortKey {
	switch column {
	case 3:
		return SortInventoryTotal
	case 4:
		return SortProductType
	case 5:
		return SortVendor
	default:
		return SortTitle
	}
}

// Direction is a column sort direction.
type Direction string

// Sort directions.
const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// Query is a request to a Source.
type Query struct {
	Text    *string // nil means unfiltered
	SortKey SortKey
	Reverse bool
	First   int
}

// TextValue returns the filter text or "" when unfiltered.
func (q Query) TextValue() string {
	if q.Text == nil {
		return ""
	}
	return *q.Text
}

// String renders the query for logs.
func (q Query) String() string {
	return fmt.Sprintf("query=%q sort=%s reverse=%t first=%d", q.TextValue(), q.SortKey, q.Reverse, q.First)
}

// Source returns products matching a query, ordered server-side.
type Source interface {
	Products(ctx context.Context, q Query) ([]Record, error)
}

// CollectionSource lists the collections of a shop.
type CollectionSource interface {
	Collections(ctx context.Context) ([]Collection, error)
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
