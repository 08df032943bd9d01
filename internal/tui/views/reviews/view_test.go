package reviews

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/reel/internal/api"
	corenotify "github.com/colonyops/reel/internal/core/notify"
	"github.com/colonyops/reel/internal/core/review"
	"github.com/colonyops/reel/pkg/tuitest"
)

type fakeService struct {
	reviews   []review.Review
	listErr   error
	updateErr error
	deleteErr error
	updated   []review.Review
	deleted   []int64
	lists     int
}

func (f *fakeService) ListReviews(context.Context) ([]review.Review, error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]review.Review(nil), f.reviews...), nil
}

func (f *fakeService) UpdateReview(_ context.Context, r review.Review) error {
	f.updated = append(f.updated, r)
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.reviews {
		if f.reviews[i].ID == r.ID {
			f.reviews[i] = r
		}
	}
	return nil
}

func (f *fakeService) DeleteReview(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.reviews[:0]
	for _, r := range f.reviews {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.reviews = kept
	return nil
}

func seeded() *fakeService {
	return &fakeService{reviews: []review.Review{
		{ID: 2, MovieTitle: "Alien", Title: "Tense", Description: "Still scary.", Rating: 9},
		{ID: 1, MovieTitle: "The Matrix", Title: "Great", Description: "Loved it.", Rating: 8},
	}}
}

// pump runs cmd and feeds every produced message back into v until no
// commands remain. Notifications are collected instead of fed back; spinner
// and cursor ticks are dropped so the loop ends.
func pump(t *testing.T, v View, cmd tea.Cmd) (View, []corenotify.Notification) {
	t.Helper()

	var notes []corenotify.Notification
	queue := tuitest.Drain(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]

		switch m := msg.(type) {
		case spinner.TickMsg, cursor.BlinkMsg:
			continue
		case corenotify.Notification:
			notes = append(notes, m)
			continue
		}

		var next tea.Cmd
		v, next = v.Update(msg)
		queue = append(queue, tuitest.Drain(next)...)
	}
	return v, notes
}

func press(t *testing.T, v View, keys ...tea.KeyMsg) (View, []corenotify.Notification) {
	t.Helper()

	var notes []corenotify.Notification
	for _, k := range keys {
		var cmd tea.Cmd
		v, cmd = v.Update(k)
		var n []corenotify.Notification
		v, n = pump(t, v, cmd)
		notes = append(notes, n...)
	}
	return v, notes
}

func activated(t *testing.T, svc *fakeService) View {
	t.Helper()

	v := New(svc)
	v.SetSize(80, 30)
	v, cmd := v.Activate()
	assert.True(t, v.Controller().Loading())
	v, _ = pump(t, v, cmd)
	return v
}

func titles(rs []review.Review) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Title)
	}
	return out
}

func TestView_ActivateFetches(t *testing.T) {
	svc := seeded()
	v := activated(t, svc)

	assert.Equal(t, 1, svc.lists)
	assert.False(t, v.Controller().Loading())

	out := tuitest.StripANSI(v.View())
	assert.Contains(t, out, "Tense")
	assert.Contains(t, out, "★ 9")
	assert.Contains(t, out, "Still scary.")
	assert.Contains(t, out, "The Matrix")

	// Re-entering the tab fetches again.
	v, cmd := v.Activate()
	_, _ = pump(t, v, cmd)
	assert.Equal(t, 2, svc.lists)
}

func TestView_Empty(t *testing.T) {
	v := activated(t, &fakeService{})

	assert.True(t, v.Controller().Empty())
	assert.Contains(t, tuitest.StripANSI(v.View()), EmptyMessage)
}

func TestView_FetchFailureKeepsList(t *testing.T) {
	svc := seeded()
	v := activated(t, svc)
	before := v.Controller().Reviews()

	svc.listErr = &api.StatusError{Op: "list reviews", StatusCode: 503}
	v, notes := press(t, v, tuitest.KeyPress('r'))

	assert.Equal(t, before, v.Controller().Reviews())
	assert.Equal(t, api.MsgFailed, v.Controller().Err())

	out := tuitest.StripANSI(v.View())
	assert.Contains(t, out, api.MsgFailed)
	assert.Contains(t, out, "Tense")

	require.Len(t, notes, 1)
	assert.Equal(t, corenotify.LevelError, notes[0].Level)
}

func TestEditor_Save(t *testing.T) {
	svc := seeded()
	v := activated(t, svc)

	v, _ = press(t, v, tuitest.KeyDown(), tuitest.KeyEnter())
	require.True(t, v.EditorOpen())
	assert.Equal(t, EditorViewing, v.Editor().State())
	assert.Equal(t, int64(1), v.Editor().Original().ID)
	assert.Contains(t, tuitest.StripANSI(v.Overlay(v.View(), 80, 30)), "Loved it.")

	v, _ = press(t, v, tuitest.KeyPress('e'))
	require.Equal(t, EditorEditing, v.Editor().State())
	assert.Equal(t, review.Draft{Title: "Great", Description: "Loved it.", Rating: "8"}, v.Editor().Draft())

	v, _ = press(t, v, tuitest.KeyPressString("!"))
	assert.Equal(t, "Great!", v.Editor().Draft().Title)
	assert.Empty(t, svc.updated, "edits stay local until saved")

	listsBefore := svc.lists
	v, notes := press(t, v, tuitest.Key(tea.KeyCtrlS))

	assert.False(t, v.EditorOpen())
	require.Len(t, svc.updated, 1)
	got := svc.updated[0]
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Great!", got.Title)
	assert.Equal(t, "The Matrix", got.MovieTitle)
	assert.InDelta(t, 8.0, got.Rating, 0.0001)

	assert.Equal(t, listsBefore+1, svc.lists, "list re-fetched after save")
	assert.Contains(t, titles(v.Controller().Reviews()), "Great!")

	require.Len(t, notes, 1)
	assert.Equal(t, corenotify.LevelSuccess, notes[0].Level)
}

func TestEditor_SaveValidation(t *testing.T) {
	svc := seeded()
	v := activated(t, svc)

	v, _ = press(t, v, tuitest.KeyEnter(), tuitest.KeyPress('e'))
	// Move to rating and clear it.
	v, _ = press(t, v, tuitest.KeyTab(), tuitest.KeyTab(), tuitest.Key(tea.KeyBackspace))
	require.Equal(t, "", v.Editor().Draft().Rating)

	v, notes := press(t, v, tuitest.Key(tea.KeyCtrlS))

	require.True(t, v.EditorOpen())
	assert.Equal(t, EditorEditing, v.Editor().State())
	assert.Equal(t, review.ValidationMessage, v.Editor().Message())
	assert.Empty(t, svc.updated)

	require.Len(t, notes, 1)
	assert.Equal(t, corenotify.LevelError, notes[0].Level)
}

func TestEditor_SaveFailure(t *testing.T) {
	svc := seeded()
	v := activated(t, svc)
	before := v.Controller().Reviews()
	lists := svc.lists

	svc.updateErr = &api.TransportError{Op: "update review", Err: errors.New("timeout")}
	v, _ = press(t, v, tuitest.KeyEnter(), tuitest.KeyPress('e'), tuitest.KeyPressString("x"))
	v, notes := press(t, v, tuitest.Key(tea.KeyCtrlS))

	require.True(t, v.EditorOpen())
	assert.Equal(t, EditorEditing, v.Editor().State())
	assert.Equal(t, api.MsgNetwork, v.Editor().Message())
	assert.Equal(t, "Tensex", v.Editor().Draft().Title, "draft kept after failure")
	assert.Equal(t, before, v.Controller().Reviews(), "list unchanged")
	assert.Equal(t, lists, svc.lists, "no re-fetch after failure")

	require.Len(t, notes, 1)
	assert.Equal(t, api.MsgNetwork, notes[0].Message)
}

func TestEditor_Delete(t *testing.T) {
	svc := seeded()
	v := activated(t, svc)

	v, _ = press(t, v, tuitest.KeyEnter(), tuitest.Key(tea.KeyCtrlD))
	require.Equal(t, EditorConfirmDelete, v.Editor().State())
	assert.Contains(t, tuitest.StripANSI(v.Overlay("", 80, 30)), "Delete review")

	v, notes := press(t, v, tuitest.KeyPress('y'))

	assert.False(t, v.EditorOpen())
	assert.Equal(t, []int64{2}, svc.deleted)
	assert.NotContains(t, titles(v.Controller().Reviews()), "Tense")
	assert.Len(t, v.Controller().Reviews(), 1)

	require.Len(t, notes, 1)
	assert.Equal(t, corenotify.LevelSuccess, notes[0].Level)
}

func TestEditor_DeleteCancelled(t *testing.T) {
	for _, tt := range []struct {
		name  string
		setup []tea.KeyMsg
		want  EditorState
	}{
		{name: "from viewing", want: EditorViewing},
		{name: "from editing", setup: []tea.KeyMsg{tuitest.KeyPress('e')}, want: EditorEditing},
	} {
		t.Run(tt.name, func(t *testing.T) {
			svc := seeded()
			v := activated(t, svc)
			v, _ = press(t, v, tuitest.KeyEnter())
			v, _ = press(t, v, tt.setup...)

			v, _ = press(t, v, tuitest.Key(tea.KeyCtrlD), tuitest.KeyEsc())

			require.True(t, v.EditorOpen())
			assert.Equal(t, tt.want, v.Editor().State())
			assert.Empty(t, svc.deleted)
		})
	}
}

func TestEditor_DeleteFailure(t *testing.T) {
	svc := seeded()
	svc.deleteErr = &api.StatusError{Op: "delete review", StatusCode: 404}
	v := activated(t, svc)

	v, notes := press(t, v, tuitest.KeyEnter(), tuitest.Key(tea.KeyCtrlD), tuitest.KeyPress('y'))

	require.True(t, v.EditorOpen())
	assert.Equal(t, EditorViewing, v.Editor().State())
	assert.Equal(t, api.MsgFailed, v.Editor().Message())
	assert.Len(t, v.Controller().Reviews(), 2)

	require.Len(t, notes, 1)
	assert.Equal(t, corenotify.LevelError, notes[0].Level)
}

func TestEditor_EscDiscardsDraft(t *testing.T) {
	svc := seeded()
	v := activated(t, svc)
	lists := svc.lists

	v, _ = press(t, v, tuitest.KeyEnter(), tuitest.KeyPress('e'), tuitest.KeyPressString("zzz"))
	editor := v.Editor()
	v, _ = press(t, v, tuitest.KeyEsc())

	assert.False(t, v.EditorOpen())
	assert.Equal(t, OutcomeCancelled, editor.Outcome())
	assert.Empty(t, svc.updated)
	assert.Equal(t, lists, svc.lists)
	assert.Equal(t, "Tense", v.Controller().Reviews()[0].Title)

	// Reopening starts from the stored values.
	v, _ = press(t, v, tuitest.KeyEnter())
	assert.Equal(t, "Tense", v.Editor().Draft().Title)
}

func TestEditor_KeysIgnoredWhileSaving(t *testing.T) {
	svc := seeded()
	e := NewEditor(svc.reviews[0], svc, 80)
	e, _ = e.Update(tuitest.KeyPress('e'))
	e, cmd := e.Update(tuitest.Key(tea.KeyCtrlS))
	require.Equal(t, EditorSaving, e.State())
	require.NotNil(t, cmd)

	e, _ = e.Update(tuitest.KeyEsc())
	assert.Equal(t, EditorSaving, e.State())

	// A result for another review is ignored.
	e, _ = e.Update(savedMsg{id: 99})
	assert.Equal(t, EditorSaving, e.State())
}

func TestController_Apply(t *testing.T) {
	c := NewController()
	c.Apply(c.Begin(), []review.Review{{ID: 1}, {ID: 2}, {ID: 3}}, nil)
	c.MoveDown(5)
	c.MoveDown(5)
	assert.Equal(t, 2, c.Cursor())

	c.Apply(c.Begin(), nil, errors.New("boom"))
	assert.Len(t, c.Reviews(), 3)
	assert.Equal(t, api.MsgFailed, c.Err())

	c.Apply(c.Begin(), []review.Review{{ID: 1}}, nil)
	assert.Equal(t, 0, c.Cursor(), "cursor clamped to the shorter list")
	assert.Empty(t, c.Err())
}

func TestController_OverlappingFetches(t *testing.T) {
	c := NewController()
	first := c.Begin()
	second := c.Begin()

	assert.False(t, c.Apply(first, []review.Review{{ID: 1}}, nil))
	assert.True(t, c.Loading(), "still waiting for the newest fetch")
	assert.False(t, c.Loaded())

	assert.True(t, c.Apply(second, []review.Review{{ID: 2}}, nil))
	assert.False(t, c.Loading())
	require.Len(t, c.Reviews(), 1)
	assert.Equal(t, int64(2), c.Reviews()[0].ID)
}

func TestView_StaleListAfterDelete(t *testing.T) {
	svc := seeded()
	v := New(svc)
	v.SetSize(80, 30)

	// A refresh is in flight when the user deletes "Tense".
	v, before := v.Refresh()
	beforeMsgs := tuitest.Drain(before)

	svc.reviews = svc.reviews[1:]
	v, after := v.Refresh()

	var stale, fresh LoadedMsg
	for _, msg := range beforeMsgs {
		if m, ok := msg.(LoadedMsg); ok {
			stale = m
		}
	}
	for _, msg := range tuitest.Drain(after) {
		if m, ok := msg.(LoadedMsg); ok {
			fresh = m
		}
	}
	require.Len(t, stale.Reviews, 2)
	require.Len(t, fresh.Reviews, 1)

	v, _ = v.Update(fresh)
	v, cmd := v.Update(stale)
	assert.Nil(t, cmd)

	titles := make([]string, 0, len(v.Controller().Reviews()))
	for _, r := range v.Controller().Reviews() {
		titles = append(titles, r.Title)
	}
	assert.Equal(t, []string{"Great"}, titles)
	assert.False(t, v.Controller().Loading())
}

func TestEditorState_String(t *testing.T) {
	assert.Equal(t, "confirm-delete", EditorConfirmDelete.String())
	assert.Equal(t, "EditorState(42)", EditorState(42).String())
}
