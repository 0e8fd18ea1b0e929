package review

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
	"github.com/gtondello/ShopifyProductSearchApp/pkg/tuitest"
)

type recordingNavigator struct {
	ids []string
}

func (n *recordingNavigator) NavigateToRecordDetail(_ context.Context, id string) error {
	n.ids = append(n.ids, id)
	return nil
}

func newTestView(nav *recordingNavigator) View {
	v := New(catalogRecords(), DefaultDisplay(), nav)
	v.SetSize(120, 40)
	return v
}

func press(v View, k string) (View, tea.Cmd) {
	return v.Update(tuitest.Key(k))
}

func TestView_SortEmitsDisplayState(t *testing.T) {
	v := newTestView(nil)

	v, cmd := press(v, "s")
	require.NotNil(t, cmd)
	msg, ok := cmd().(DisplayStateChangedMsg)
	require.True(t, ok)
	assert.Equal(t, colType, msg.Display.SortColumnIndex)

	v, cmd = press(v, "r")
	msg = cmd().(DisplayStateChangedMsg)
	assert.Equal(t, catalog.Descending, msg.Display.SortDirection)
	assert.Equal(t, []string{"Mug", "apron", "Bag", "Hat"}, titles(v.ctrl.Records()))

	_, cmd = press(v, "d")
	msg = cmd().(DisplayStateChangedMsg)
	assert.False(t, msg.Display.ShowDescriptions)
}

func TestView_Back(t *testing.T) {
	for _, k := range []string{"b", "esc"} {
		v := newTestView(nil)
		_, cmd := press(v, k)
		require.NotNil(t, cmd, k)
		assert.Equal(t, BackMsg{}, cmd())
	}
}

func TestView_EscClosesModalFirst(t *testing.T) {
	v := newTestView(nil)
	v, _ = press(v, "enter")
	require.True(t, v.HasModal())

	v, cmd := press(v, "esc")
	assert.Nil(t, cmd)
	assert.False(t, v.HasModal())
}

func TestView_Open(t *testing.T) {
	nav := &recordingNavigator{}
	v := newTestView(nav)
	v, _ = press(v, "down")

	v, cmd := press(v, "o")
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd())

	assert.Equal(t, []string{"2"}, nav.ids)
	assert.Equal(t, "Opened Hat in admin", v.notice)
}

func TestView_Render(t *testing.T) {
	v := newTestView(nil)
	out := tuitest.StripANSI(v.View())

	assert.Contains(t, out, "Product ▲")
	assert.Contains(t, out, "4 products selected.")
	assert.Contains(t, out, "Product descriptions are shown.")
	assert.Less(t, strings.Index(out, "Bag"), strings.Index(out, "Hat"))

	v, _ = press(v, "r")
	out = tuitest.StripANSI(v.View())
	assert.Contains(t, out, "Product ▼")
	assert.Less(t, strings.Index(out, "Hat"), strings.Index(out, "Bag"))
}
