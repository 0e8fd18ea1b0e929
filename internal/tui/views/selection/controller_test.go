package selection

import (
	"errors"
	"testing"
	"time"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bagAndHat() []catalog.Record {
	return []catalog.Record{
		{ID: "1", Title: "Bag", ProductType: "Accessories", Vendor: "Acme", TotalInventory: 5},
		{ID: "2", Title: "Hat", ProductType: "Accessories", Vendor: "Zinc", TotalInventory: 0},
	}
}

func loaded(records []catalog.Record) *Controller {
	c := NewController()
	req := c.Begin()
	c.Apply(req.Seq, records, nil)
	return c
}

func TestController_Debounce(t *testing.T) {
	t.Run("only the last keystroke commits", func(t *testing.T) {
		c := NewController()
		t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		t1 := c.SetFilterText("b", t0)
		t2 := c.SetFilterText("ba", t0.Add(100*time.Millisecond))
		t3 := c.SetFilterText("bag", t0.Add(200*time.Millisecond))

		assert.Equal(t, t0.Add(700*time.Millisecond), t3.Due)
		assert.Equal(t, DebounceInterval, t3.Delay)

		_, ok := c.Fire(t1.Token)
		assert.False(t, ok)
		_, ok = c.Fire(t2.Token)
		assert.False(t, ok)

		req, ok := c.Fire(t3.Token)
		require.True(t, ok)
		assert.Equal(t, "bag", req.Query.TextValue())
		assert.Equal(t, catalog.PageSize, req.Query.First)

		_, ok = c.Fire(t3.Token)
		assert.False(t, ok, "a timer fires at most once")
	})

	t.Run("live text updates before commit", func(t *testing.T) {
		c := NewController()
		c.SetFilterText("ha", time.Now())

		assert.Equal(t, "ha", c.FilterText())
		assert.Nil(t, c.Query().CommittedFilter)
		assert.False(t, c.FilterSettled())
		assert.True(t, c.Pending())
	})

	t.Run("committed converges after fire", func(t *testing.T) {
		c := NewController()
		tm := c.SetFilterText("ha", time.Now())
		_, ok := c.Fire(tm.Token)
		require.True(t, ok)

		q := c.Query()
		require.NotNil(t, q.CommittedFilter)
		assert.Equal(t, "ha", *q.CommittedFilter)
		assert.True(t, c.FilterSettled())
		assert.False(t, c.Pending())
	})
}

func TestController_ClearFilter(t *testing.T) {
	c := NewController()
	now := time.Now()
	typing := c.SetFilterText("bag", now)

	cleared := c.ClearFilter(now)
	assert.Equal(t, ClearDelay, cleared.Delay)
	assert.Equal(t, now.Add(100*time.Millisecond), cleared.Due)

	q := c.Query()
	assert.Nil(t, q.FilterText)
	assert.Nil(t, q.CommittedFilter)

	_, ok := c.Fire(typing.Token)
	assert.False(t, ok, "clear cancels the pending debounce")

	req, ok := c.Fire(cleared.Token)
	require.True(t, ok)
	assert.Nil(t, req.Query.Text)
	assert.Nil(t, c.Query().CommittedFilter)
}

func TestController_SetSort(t *testing.T) {
	tests := []struct {
		column  int
		dir     catalog.Direction
		wantKey catalog.SortKey
		reverse bool
	}{
		{2, catalog.Ascending, catalog.SortTitle, false},
		{3, catalog.Descending, catalog.SortInventoryTotal, true},
		{4, catalog.Ascending, catalog.SortProductType, false},
		{5, catalog.Descending, catalog.SortVendor, true},
		{9, catalog.Ascending, catalog.SortTitle, false},
	}

	for _, tt := range tests {
		c := NewController()
		req := c.SetSort(tt.column, tt.dir)

		assert.Equal(t, tt.wantKey, req.Query.SortKey)
		assert.Equal(t, tt.reverse, req.Query.Reverse)
		assert.Equal(t, tt.column, c.Display().SortColumnIndex)
		assert.Equal(t, tt.dir, c.Display().SortDirection)
		assert.True(t, c.Loading())
	}
}

func TestController_StaleResponses(t *testing.T) {
	c := NewController()
	now := time.Now()

	ta := c.SetFilterText("x", now)
	reqA, ok := c.Fire(ta.Token)
	require.True(t, ok)

	tb := c.SetFilterText("y", now.Add(time.Second))
	reqB, ok := c.Fire(tb.Token)
	require.True(t, ok)
	require.Greater(t, reqB.Seq, reqA.Seq)

	ys := []catalog.Record{{ID: "y1", Title: "Yarn"}}
	xs := []catalog.Record{{ID: "x1", Title: "Xylophone"}}

	assert.True(t, c.Apply(reqB.Seq, ys, nil))
	assert.False(t, c.Apply(reqA.Seq, xs, nil))

	assert.Equal(t, ys, c.Page())
	assert.False(t, c.Loading())

	t.Run("stale errors are dropped too", func(t *testing.T) {
		assert.False(t, c.Apply(reqA.Seq, nil, errors.New("boom")))
		assert.NoError(t, c.Err())
	})
}

func TestController_LoadingAndError(t *testing.T) {
	c := NewController()
	req := c.Begin()
	assert.True(t, c.Loading())

	c.Apply(req.Seq, nil, errors.New("Access denied for products field"))
	assert.False(t, c.Loading())
	require.Error(t, c.Err())
	assert.Equal(t, "Access denied for products field", c.Err().Error())

	req = c.Begin()
	c.Apply(req.Seq, bagAndHat(), nil)
	assert.NoError(t, c.Err())
}

func TestController_SelectAllState(t *testing.T) {
	t.Run("empty page is unchecked", func(t *testing.T) {
		c := loaded(nil)
		assert.Equal(t, Unchecked, c.SelectAllState())

		c.ToggleSelectAll(true)
		assert.Equal(t, Unchecked, c.SelectAllState())
	})

	t.Run("tri-state", func(t *testing.T) {
		records := []catalog.Record{{ID: "a"}, {ID: "b"}, {ID: "c"}}
		c := loaded(records)
		assert.Equal(t, Unchecked, c.SelectAllState())

		c.ToggleSelect("a", true)
		assert.Equal(t, Indeterminate, c.SelectAllState())
		c.ToggleSelect("b", true)
		assert.Equal(t, Indeterminate, c.SelectAllState())
		c.ToggleSelect("c", true)
		assert.Equal(t, Checked, c.SelectAllState())

		c.ToggleSelectAll(false)
		assert.Equal(t, Unchecked, c.SelectAllState())
		assert.Zero(t, c.Selection().Len())

		c.ToggleSelectAll(true)
		assert.Equal(t, Checked, c.SelectAllState())
		assert.Equal(t, []string{"a", "b", "c"}, c.Selection().SelectedIDs)
	})
}

func TestController_ToggleSelect(t *testing.T) {
	c := loaded(bagAndHat())

	c.ToggleSelect("2", true)
	c.ToggleSelect("2", true)
	assert.Equal(t, 1, c.Selection().Len(), "duplicate selects are idempotent")

	c.ToggleSelect("missing", true)
	assert.False(t, c.IsSelected("missing"))

	c.ToggleSelect("2", false)
	assert.False(t, c.IsSelected("2"))
}

func TestController_PrunesSelectionOnNewPage(t *testing.T) {
	c := loaded(bagAndHat())
	c.ToggleSelectAll(true)

	req := c.Begin()
	c.Apply(req.Seq, []catalog.Record{{ID: "2", Title: "Hat"}, {ID: "3", Title: "Scarf"}}, nil)

	assert.Equal(t, []string{"2"}, c.Selection().SelectedIDs)
	assert.Equal(t, Indeterminate, c.SelectAllState())
}

func TestController_BagAndHat(t *testing.T) {
	c := NewController()
	req := c.SetSort(5, catalog.Ascending)
	assert.Equal(t, catalog.SortVendor, req.Query.SortKey)
	assert.False(t, req.Query.Reverse)

	// The source orders by vendor.
	c.Apply(req.Seq, bagAndHat(), nil)
	require.Len(t, c.Page(), 2)
	assert.Equal(t, "Acme", c.Page()[0].Vendor)
	assert.Equal(t, "Zinc", c.Page()[1].Vendor)

	c.ToggleSelect("2", true)
	assert.Equal(t, Indeterminate, c.SelectAllState())

	c.ToggleSelect("1", true)
	assert.Equal(t, Checked, c.SelectAllState())
}

func TestController_Confirm(t *testing.T) {
	t.Run("nothing selected", func(t *testing.T) {
		c := loaded(bagAndHat())
		_, _, ok := c.Confirm()
		assert.False(t, ok)
	})

	t.Run("preserves page order", func(t *testing.T) {
		c := loaded(bagAndHat())
		c.ToggleSelect("2", true)
		c.ToggleSelect("1", true)

		records, snap, ok := c.Confirm()
		require.True(t, ok)
		require.Len(t, records, 2)
		assert.Equal(t, "Bag", records[0].Title)
		assert.Equal(t, "Hat", records[1].Title)
		assert.Equal(t, []string{"2", "1"}, snap.Selection.SelectedIDs)
	})
}

func TestController_RestoreRoundTrip(t *testing.T) {
	c := NewController()
	now := time.Now()

	tm := c.SetFilterText("ac", now)
	req, ok := c.Fire(tm.Token)
	require.True(t, ok)
	c.Apply(req.Seq, bagAndHat(), nil)

	req = c.SetSort(5, catalog.Descending)
	c.Apply(req.Seq, bagAndHat(), nil)
	c.ToggleShowDescriptions()
	c.ToggleSelect("1", true)
	// Live text ahead of the committed filter.
	c.SetFilterText("acm", now.Add(time.Second))

	before := c.Snapshot()
	_, snap, ok := c.Confirm()
	require.True(t, ok)

	// Mutate the original controller after confirming.
	c.ToggleSelectAll(false)
	c.ClearFilter(now)

	restored := NewControllerFrom(snap)
	after := restored.Snapshot()

	assert.Equal(t, before.Query, after.Query)
	assert.Equal(t, before.Selection, after.Selection)
	assert.Equal(t, before.Display, after.Display)
	assert.Equal(t, before.Page, after.Page)

	q := restored.Query()
	require.NotNil(t, q.FilterText)
	require.NotNil(t, q.CommittedFilter)
	assert.Equal(t, "acm", *q.FilterText)
	assert.Equal(t, "ac", *q.CommittedFilter)
	assert.Equal(t, catalog.SortVendor, q.SortKey)
	assert.True(t, q.SortDescending)
	assert.False(t, restored.Display().ShowDescriptions)
}

func TestController_RestoreDiscardsInFlight(t *testing.T) {
	c := loaded(bagAndHat())
	req := c.Begin()
	snap := c.Snapshot()

	c.Restore(snap)
	assert.False(t, c.Apply(req.Seq, nil, nil))
	assert.Len(t, c.Page(), 2)
}

func TestController_ResumeAfterRestore(t *testing.T) {
	now := time.Now()

	t.Run("unsettled filter re-arms the debounce", func(t *testing.T) {
		c := loaded(bagAndHat())
		c.SetFilterText("ba", now)
		snap := c.Snapshot()
		assert.True(t, snap.Stale)

		restored := NewControllerFrom(snap)
		assert.Equal(t, snap, restored.Snapshot(), "restored values are exact")
		assert.False(t, restored.FilterSettled())

		tm, ok := restored.ResumeDebounce(now)
		require.True(t, ok)
		assert.Equal(t, DebounceInterval, tm.Delay)
		_, ok = restored.ResumeQuery()
		assert.False(t, ok, "the debounce issues the query")

		req, ok := restored.Fire(tm.Token)
		require.True(t, ok)
		assert.Equal(t, "ba", req.Query.TextValue())
		assert.True(t, restored.FilterSettled())

		require.True(t, restored.Apply(req.Seq, bagAndHat()[:1], nil))
		assert.False(t, restored.Snapshot().Stale)
	})

	t.Run("in-flight query is re-issued", func(t *testing.T) {
		c := loaded(bagAndHat())
		c.SetSort(5, catalog.Descending)
		snap := c.Snapshot()
		assert.True(t, snap.Stale)

		restored := NewControllerFrom(snap)
		_, ok := restored.ResumeDebounce(now)
		assert.False(t, ok)

		req, ok := restored.ResumeQuery()
		require.True(t, ok)
		assert.Equal(t, catalog.SortVendor, req.Query.SortKey)
		assert.True(t, req.Query.Reverse)
		assert.True(t, restored.Loading())

		_, ok = restored.ResumeQuery()
		assert.False(t, ok, "issued once")
	})

	t.Run("settled snapshot needs nothing", func(t *testing.T) {
		restored := NewControllerFrom(loaded(bagAndHat()).Snapshot())
		_, ok := restored.ResumeDebounce(now)
		assert.False(t, ok)
		_, ok = restored.ResumeQuery()
		assert.False(t, ok)
		assert.False(t, restored.Loading())
	})
}

func TestController_ToggleSelectAllKeepsSequence(t *testing.T) {
	c := loaded(bagAndHat())
	req := c.Begin()

	c.ToggleSelectAll(true)
	assert.True(t, c.Apply(req.Seq, bagAndHat(), nil))
	assert.Equal(t, Checked, c.SelectAllState())
}

func TestController_Cursor(t *testing.T) {
	records := []catalog.Record{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	c := loaded(records)

	c.MoveUp(2)
	assert.Equal(t, 0, c.Cursor())

	c.MoveDown(2)
	c.MoveDown(2)
	assert.Equal(t, 2, c.Cursor())
	assert.Equal(t, 1, c.Offset())

	c.MoveDown(2)
	c.MoveDown(2)
	assert.Equal(t, 3, c.Cursor())
	assert.Equal(t, "d", c.Current().ID)

	req := c.Begin()
	c.Apply(req.Seq, records[:1], nil)
	assert.Equal(t, 0, c.Cursor())
	assert.Equal(t, 0, c.Offset())
}
