package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
)

func titles(records []catalog.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Title
	}
	return out
}

func catalogRecords() []catalog.Record {
	return []catalog.Record{
		{ID: "3", Title: "Mug", ProductType: "Kitchen", Vendor: "Acme"},
		{ID: "1", Title: "Bag", ProductType: "Accessories", Vendor: "Acme"},
		{ID: "2", Title: "Hat", ProductType: "Accessories", Vendor: "Zinc"},
		{ID: "4", Title: "apron", ProductType: "Kitchen", Vendor: "Birch"},
	}
}

func TestSortRecords(t *testing.T) {
	records := catalogRecords()

	t.Run("title is byte-wise", func(t *testing.T) {
		got := SortRecords(records, colProduct, catalog.Ascending)
		assert.Equal(t, []string{"Bag", "Hat", "Mug", "apron"}, titles(got))
	})

	t.Run("type keeps ties in frozen order", func(t *testing.T) {
		got := SortRecords(records, colType, catalog.Ascending)
		assert.Equal(t, []string{"Bag", "Hat", "Mug", "apron"}, titles(got))

		got = SortRecords(records, colType, catalog.Descending)
		assert.Equal(t, []string{"Mug", "apron", "Bag", "Hat"}, titles(got))
	})

	t.Run("vendor", func(t *testing.T) {
		got := SortRecords(records, colVendor, catalog.Ascending)
		assert.Equal(t, []string{"Mug", "Bag", "apron", "Hat"}, titles(got))
	})

	t.Run("unknown column sorts by title", func(t *testing.T) {
		got := SortRecords(records, colTags, catalog.Ascending)
		assert.Equal(t, []string{"Bag", "Hat", "Mug", "apron"}, titles(got))
	})

	t.Run("input is not mutated", func(t *testing.T) {
		SortRecords(records, colProduct, catalog.Descending)
		assert.Equal(t, catalogRecords(), records)
	})
}

func TestController_SortRoundTrip(t *testing.T) {
	c := NewController(catalogRecords(), DefaultDisplay())
	asc := titles(c.Records())

	c.SetSort(colProduct, catalog.Descending)
	assert.Equal(t, []string{"apron", "Mug", "Hat", "Bag"}, titles(c.Records()))

	c.SetSort(colProduct, catalog.Ascending)
	assert.Equal(t, asc, titles(c.Records()))
}

func TestController_BagAndHat(t *testing.T) {
	records := []catalog.Record{
		{ID: "2", Title: "Hat", ProductType: "Accessories", Vendor: "Zinc"},
		{ID: "1", Title: "Bag", ProductType: "Accessories", Vendor: "Acme", TotalInventory: 5},
	}
	c := NewController(records, DefaultDisplay())

	c.SetSort(colVendor, catalog.Ascending)
	assert.Equal(t, []string{"Bag", "Hat"}, titles(c.Records()))
}

func TestController_DisplayState(t *testing.T) {
	c := NewController(catalogRecords(), DefaultDisplay())
	assert.Equal(t, catalog.DisplayState{SortColumnIndex: 1, SortDirection: catalog.Ascending, ShowDescriptions: true}, c.Display())

	d := c.SetSort(colVendor, catalog.Descending)
	assert.Equal(t, colVendor, d.SortColumnIndex)
	assert.Equal(t, catalog.Descending, d.SortDirection)

	d = c.ToggleShowDescriptions()
	assert.False(t, d.ShowDescriptions)
	assert.Equal(t, d, c.Display())

	t.Run("seeded display is applied", func(t *testing.T) {
		c := NewController(catalogRecords(), d)
		assert.Equal(t, []string{"Hat", "apron", "Mug", "Bag"}, titles(c.Records()))
		assert.False(t, c.Display().ShowDescriptions)
	})
}

func TestController_Cursor(t *testing.T) {
	c := NewController(catalogRecords(), DefaultDisplay())
	require.Equal(t, "Bag", c.Current().Title)

	c.MoveDown(2)
	c.MoveDown(2)
	assert.Equal(t, 2, c.Cursor())
	assert.Equal(t, 1, c.Offset())
	assert.Equal(t, "Mug", c.Current().Title)

	c.MoveUp(2)
	c.MoveUp(2)
	c.MoveUp(2)
	assert.Equal(t, 0, c.Cursor())
	assert.Equal(t, 0, c.Offset())

	empty := NewController(nil, DefaultDisplay())
	assert.Nil(t, empty.Current())
}

func TestNextSortColumn(t *testing.T) {
	assert.Equal(t, colType, nextSortColumn(colProduct))
	assert.Equal(t, colVendor, nextSortColumn(colType))
	assert.Equal(t, colProduct, nextSortColumn(colVendor))
	assert.Equal(t, colProduct, nextSortColumn(colTags))
}
