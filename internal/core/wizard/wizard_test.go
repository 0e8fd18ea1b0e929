package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
)

func records() []catalog.Record {
	return []catalog.Record{
		{ID: "1", Title: "Bag", Vendor: "Acme"},
		{ID: "2", Title: "Hat", Vendor: "Zinc"},
	}
}

func snapshot() catalog.Snapshot {
	return catalog.Snapshot{
		Query: catalog.QueryState{
			FilterText:      catalog.StringPtr("a"),
			CommittedFilter: catalog.StringPtr("a"),
			SortKey:         catalog.SortVendor,
			SortDescending:  true,
		},
		Selection: catalog.SelectionState{SelectedIDs: []string{"1", "2"}},
		Display:   catalog.DisplayState{SortColumnIndex: 5, SortDirection: catalog.Descending, ShowDescriptions: false},
		Page:      records(),
	}
}

func TestCoordinator_Lifecycle(t *testing.T) {
	c := New()
	assert.Equal(t, Selecting, c.Step())
	assert.False(t, c.CanResume())
	_, ok := c.ControllerSnapshot()
	assert.False(t, ok)

	require.NoError(t, c.Confirm(records(), snapshot()))
	assert.Equal(t, Reviewing, c.Step())
	assert.Equal(t, records(), c.SelectedRecords())

	require.NoError(t, c.Back())
	assert.Equal(t, Selecting, c.Step())

	snap, ok := c.ControllerSnapshot()
	require.True(t, ok)
	assert.Equal(t, snapshot(), snap)
	assert.Equal(t, records(), c.SelectedRecords(), "records survive going back")
	assert.True(t, c.CanResume())

	require.NoError(t, c.Resume())
	assert.Equal(t, Reviewing, c.Step())
}

func TestCoordinator_InvalidTransitions(t *testing.T) {
	c := New()
	assert.ErrorIs(t, c.Back(), ErrWrongStep)
	assert.ErrorIs(t, c.Resume(), ErrNoSelection)
	assert.ErrorIs(t, c.Confirm(nil, catalog.Snapshot{}), ErrEmptySelection)
	assert.Equal(t, Selecting, c.Step())

	require.NoError(t, c.Confirm(records(), snapshot()))
	assert.ErrorIs(t, c.Confirm(records(), snapshot()), ErrWrongStep)
	assert.ErrorIs(t, c.Resume(), ErrWrongStep)
}

func TestCoordinator_ReviewSnapshotRetained(t *testing.T) {
	def := catalog.DisplayState{SortColumnIndex: 1, SortDirection: catalog.Ascending, ShowDescriptions: true}

	c := New()
	require.NoError(t, c.Confirm(records(), snapshot()))
	assert.Equal(t, def, c.ReviewDisplay(def))

	changed := catalog.DisplayState{SortColumnIndex: 3, SortDirection: catalog.Descending}
	c.RecordReviewState(changed)

	require.NoError(t, c.Back())
	require.NoError(t, c.Resume())
	assert.Equal(t, changed, c.ReviewDisplay(def))

	t.Run("new confirmation keeps review display", func(t *testing.T) {
		require.NoError(t, c.Back())
		require.NoError(t, c.Confirm(records()[:1], snapshot()))
		assert.Len(t, c.SelectedRecords(), 1)
		assert.Equal(t, changed, c.ReviewDisplay(def))
	})
}

func TestCoordinator_CopiesInputs(t *testing.T) {
	c := New()
	recs := records()
	snap := snapshot()
	require.NoError(t, c.Confirm(recs, snap))

	recs[0].Title = "mutated"
	*snap.Query.FilterText = "mutated"
	snap.Selection.SelectedIDs[0] = "mutated"

	stored, _ := c.ControllerSnapshot()
	assert.Equal(t, "Bag", c.SelectedRecords()[0].Title)
	assert.Equal(t, "a", *stored.Query.FilterText)
	assert.Equal(t, "1", stored.Selection.SelectedIDs[0])

	st := c.State()
	*st.ControllerSnapshot.Query.FilterText = "changed"
	stored, _ = c.ControllerSnapshot()
	assert.Equal(t, "a", *stored.Query.FilterText)
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "selecting", Selecting.String())
	assert.Equal(t, "reviewing", Reviewing.String())
	assert.Equal(t, "unknown", Step(9).String())
}
