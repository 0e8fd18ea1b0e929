package selection

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
	"github.com/gtondello/ShopifyProductSearchApp/pkg/tuitest"
)

type fakeSource struct {
	records []catalog.Record
	err     error
	queries []catalog.Query
}

func (f *fakeSource) Products(_ context.Context, q catalog.Query) ([]catalog.Record, error) {
	f.queries = append(f.queries, q)
	return f.records, f.err
}

type fakeNavigator struct {
	ids []string
	err error
}

func (f *fakeNavigator) NavigateToRecordDetail(_ context.Context, id string) error {
	f.ids = append(f.ids, id)
	return f.err
}

func newTestView(t *testing.T, src *fakeSource, nav Navigator) View {
	t.Helper()
	v := New(src, nav)
	v.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	v.SetSize(120, 40)
	return v
}

// loadedView returns a view that has applied its first page.
func loadedView(t *testing.T, src *fakeSource, nav Navigator) View {
	t.Helper()
	v := newTestView(t, src, nav)
	require.NotNil(t, v.Init())

	msg := v.load(Request{Seq: v.ctrl.seq, Query: v.ctrl.Query().Query()})()
	v, _ = v.Update(msg)
	require.False(t, v.ctrl.Loading())
	return v
}

func press(t *testing.T, v View, keys ...string) (View, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		v, cmd = v.Update(tuitest.Key(k))
	}
	return v, cmd
}

func TestView_InitLoadsFirstPage(t *testing.T) {
	src := &fakeSource{records: bagAndHat()}
	v := loadedView(t, src, nil)

	require.Len(t, src.queries, 1)
	assert.Equal(t, catalog.PageSize, src.queries[0].First)
	assert.Nil(t, src.queries[0].Text)
	assert.Equal(t, catalog.SortTitle, src.queries[0].SortKey)
	assert.Len(t, v.ctrl.Page(), 2)
}

func TestView_TypingDebounces(t *testing.T) {
	src := &fakeSource{records: bagAndHat()}
	v := loadedView(t, src, nil)

	v, _ = press(t, v, "/")
	require.True(t, v.HasEditorFocus())

	for _, k := range tuitest.Type("bag") {
		var cmd tea.Cmd
		v, cmd = v.Update(k)
		assert.NotNil(t, cmd, "each keystroke re-arms the timer")
	}

	assert.Equal(t, "bag", v.ctrl.FilterText())
	assert.Nil(t, v.ctrl.Query().CommittedFilter)

	last := v.ctrl.pendingToken
	var cmd tea.Cmd
	for token := last - 2; token < last; token++ {
		v, cmd = v.Update(filterTimerMsg{token: token})
		assert.Nil(t, cmd, "superseded timer %d", token)
	}

	v, cmd = v.Update(filterTimerMsg{token: last})
	require.NotNil(t, cmd)
	assert.Equal(t, "bag", v.ctrl.Query().CommittedValue())
	assert.True(t, v.ctrl.Loading())

	v, _ = press(t, v, "esc")
	assert.False(t, v.HasEditorFocus())
	assert.Equal(t, "bag", v.ctrl.FilterText())
}

func TestView_ClearFilter(t *testing.T) {
	v := loadedView(t, &fakeSource{records: bagAndHat()}, nil)
	v, _ = press(t, v, "/", "h", "esc")
	require.Equal(t, "h", v.ctrl.FilterText())

	v, cmd := press(t, v, "x")
	require.NotNil(t, cmd)
	assert.Empty(t, v.input.Value())
	assert.Nil(t, v.ctrl.Query().FilterText)
	assert.Nil(t, v.ctrl.Query().CommittedFilter)
}

func TestView_StalePageDropped(t *testing.T) {
	v := loadedView(t, &fakeSource{records: bagAndHat()}, nil)

	old := v.ctrl.Begin()
	latest := v.ctrl.Begin()

	v, _ = v.Update(pageLoadedMsg{seq: latest.Seq, records: []catalog.Record{{ID: "9", Title: "Yarn"}}})
	v, _ = v.Update(pageLoadedMsg{seq: old.Seq, records: bagAndHat()})

	require.Len(t, v.ctrl.Page(), 1)
	assert.Equal(t, "Yarn", v.ctrl.Page()[0].Title)
}

func TestView_Selection(t *testing.T) {
	v := loadedView(t, &fakeSource{records: bagAndHat()}, nil)

	v, _ = press(t, v, "space")
	assert.True(t, v.ctrl.IsSelected("1"))
	assert.Equal(t, Indeterminate, v.ctrl.SelectAllState())

	v, _ = press(t, v, "a")
	assert.Equal(t, Checked, v.ctrl.SelectAllState())

	v, _ = press(t, v, "a")
	assert.Equal(t, Unchecked, v.ctrl.SelectAllState())

	v, _ = press(t, v, "down", "space")
	assert.Equal(t, []string{"2"}, v.ctrl.Selection().SelectedIDs)
}

func TestView_Continue(t *testing.T) {
	t.Run("requires a selection", func(t *testing.T) {
		v := loadedView(t, &fakeSource{records: bagAndHat()}, nil)
		v, cmd := press(t, v, "c")
		assert.Nil(t, cmd)
		assert.Contains(t, tuitest.StripANSI(v.View()), "Please select some products to continue")
	})

	t.Run("emits the selection", func(t *testing.T) {
		v := loadedView(t, &fakeSource{records: bagAndHat()}, nil)
		v, cmd := press(t, v, "down", "space", "c")
		require.NotNil(t, cmd)

		msg, ok := cmd().(ConfirmedMsg)
		require.True(t, ok)
		require.Len(t, msg.Records, 1)
		assert.Equal(t, "Hat", msg.Records[0].Title)
		assert.Equal(t, []string{"2"}, msg.Snapshot.Selection.SelectedIDs)
		assert.Equal(t, v.ctrl.Snapshot(), msg.Snapshot)
	})
}

func TestView_SortRequeries(t *testing.T) {
	src := &fakeSource{records: bagAndHat()}
	v := loadedView(t, src, nil)

	v, cmd := press(t, v, "s")
	require.NotNil(t, cmd)
	assert.Equal(t, colInventory, v.ctrl.Display().SortColumnIndex)
	assert.Equal(t, catalog.SortInventoryTotal, v.ctrl.Query().SortKey)
	assert.True(t, v.ctrl.Loading())

	v, _ = press(t, v, "r")
	assert.Equal(t, catalog.Descending, v.ctrl.Display().SortDirection)
	assert.True(t, v.ctrl.Query().SortDescending)

	v, _ = press(t, v, "s", "s", "s")
	assert.Equal(t, colProduct, v.ctrl.Display().SortColumnIndex)
	assert.Equal(t, catalog.SortTitle, v.ctrl.Query().SortKey)
}

func TestView_OpenInAdmin(t *testing.T) {
	nav := &fakeNavigator{}
	v := loadedView(t, &fakeSource{records: bagAndHat()}, nav)

	v, cmd := press(t, v, "o")
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd())

	assert.Equal(t, []string{"1"}, nav.ids)
	assert.Equal(t, "Opened Bag in admin", v.notice)

	t.Run("failure is reported", func(t *testing.T) {
		nav.err = errors.New("no browser")
		v, cmd := press(t, v, "o")
		v, _ = v.Update(cmd())
		assert.Equal(t, "Open failed: no browser", v.notice)
	})
}

func TestView_DetailModal(t *testing.T) {
	v := loadedView(t, &fakeSource{records: bagAndHat()}, &fakeNavigator{})

	v, _ = press(t, v, "enter")
	require.True(t, v.HasModal())
	out := tuitest.StripANSI(v.Overlay(v.View(), 120, 40))
	assert.Contains(t, out, "Bag")

	// Keys go to the modal while it is open.
	v, _ = press(t, v, "space", "esc")
	assert.False(t, v.HasModal())
	assert.Zero(t, v.ctrl.Selection().Len())
}

func TestView_Render(t *testing.T) {
	t.Run("loading placeholder", func(t *testing.T) {
		v := newTestView(t, &fakeSource{}, nil)
		v.Init()
		assert.Contains(t, tuitest.StripANSI(v.View()), "Loading products...")
	})

	t.Run("raw error message", func(t *testing.T) {
		v := loadedView(t, &fakeSource{err: errors.New("GraphQL: throttled")}, nil)
		assert.Contains(t, tuitest.StripANSI(v.View()), "GraphQL: throttled")
	})

	t.Run("rows and summary", func(t *testing.T) {
		v := loadedView(t, &fakeSource{records: bagAndHat()}, nil)
		out := tuitest.StripANSI(v.View())
		assert.Contains(t, out, "Bag")
		assert.Contains(t, out, "Hat")
		assert.Contains(t, out, "5 in stock for 0 variants")
		assert.Contains(t, out, "Showing 2 products.")
		assert.Contains(t, out, "Product descriptions are shown.")

		v, _ = press(t, v, "space", "d")
		out = tuitest.StripANSI(v.View())
		assert.Contains(t, out, "1 of 2 products selected.")
		assert.Contains(t, out, "Product descriptions are hidden.")
		assert.Contains(t, out, "[-]")
	})
}

func TestRestore(t *testing.T) {
	c := loaded(bagAndHat())
	c.SetFilterText("ha", time.Now())
	c.ToggleSelect("2", true)

	src := &fakeSource{records: bagAndHat()}
	v := Restore(c.Snapshot(), src, nil)
	assert.Equal(t, "ha", v.input.Value())
	assert.Equal(t, c.Snapshot(), v.ctrl.Snapshot())

	cmd := v.Init()
	require.NotNil(t, cmd, "unsettled filter is debounced again")
	assert.True(t, v.ctrl.Pending())

	v, cmd = v.Update(cmd())
	require.NotNil(t, cmd)
	assert.True(t, v.ctrl.FilterSettled())
	assert.True(t, v.ctrl.Loading())

	v, _ = v.Update(v.load(Request{Seq: v.ctrl.seq, Query: v.ctrl.Query().Query()})())
	require.Len(t, src.queries, 1)
	assert.Equal(t, "ha", src.queries[0].TextValue())
	assert.False(t, v.ctrl.Snapshot().Stale)
}

func TestRestore_Settled(t *testing.T) {
	src := &fakeSource{records: bagAndHat()}
	v := Restore(loaded(bagAndHat()).Snapshot(), src, nil)
	assert.Nil(t, v.Init(), "settled snapshots do not re-query")
	assert.Empty(t, src.queries)
}

func TestRestore_InFlightQuery(t *testing.T) {
	src := &fakeSource{records: bagAndHat()}
	v := loadedView(t, src, nil)
	v, _ = press(t, v, "r")
	require.True(t, v.ctrl.Loading())

	restored := Restore(v.ctrl.Snapshot(), src, nil)
	cmd := restored.Init()
	require.NotNil(t, cmd)
	assert.True(t, restored.ctrl.Loading())

	req := Request{Seq: restored.ctrl.seq, Query: restored.ctrl.Query().Query()}
	assert.True(t, req.Query.Reverse)
	restored, _ = restored.Update(restored.load(req)())
	assert.False(t, restored.ctrl.Loading())
	assert.False(t, restored.ctrl.Snapshot().Stale)
}
