// Package producttable renders product records as a fixed-width terminal table
// with optional description rows under each record.
package producttable

import "github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"

// RowKind distinguishes record rows from the description rows beneath them.
type RowKind int

const (
	RowPrimary RowKind = iota
	RowDescription
)

// Row is one rendered table line. Index is the position of the owning record
// in the record slice the rows were built from.
type Row struct {
	Kind  RowKind
	Index int
	Cells []string // primary rows only
	Text  string   // description rows only
}

// CellFunc produces the cells of a record's primary row.
type CellFunc func(catalog.Record) []string

// Interleave builds the row sequence for records. Every record yields one
// primary row, followed by a description row when showDescriptions is set.
// Rows are rebuilt from scratch on every call; positions follow records.
func Interleave(records []catalog.Record, cells CellFunc, showDescriptions bool) []Row {
	n := len(records)
	if showDescriptions {
		n *= 2
	}

	rows := make([]Row, 0, n)
	for i, r := range records {
		rows = append(rows, Row{Kind: RowPrimary, Index: i, Cells: cells(r)})
		if showDescriptions {
			rows = append(rows, Row{Kind: RowDescription, Index: i, Text: r.PlainDescription()})
		}
	}
	return rows
}
