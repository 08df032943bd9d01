package details

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/reel/internal/api"
	"github.com/colonyops/reel/internal/core/movie"
	corenotify "github.com/colonyops/reel/internal/core/notify"
	"github.com/colonyops/reel/internal/core/review"
	"github.com/colonyops/reel/pkg/tuitest"
)

type stubCreator struct {
	created []review.Review
	err     error
}

func (s *stubCreator) CreateReview(_ context.Context, r review.Review) (review.Review, error) {
	s.created = append(s.created, r)
	if s.err != nil {
		return review.Review{}, s.err
	}
	r.ID = int64(len(s.created))
	return r, nil
}

var matrix = movie.Movie{
	ID:          1,
	Title:       "The Matrix",
	Overview:    "A hacker learns the truth about reality.",
	PosterPath:  "/matrix.jpg",
	VoteAverage: 8.2,
	ReleaseDate: "1999-03-31",
}

func send(m *Modal, msgs ...tea.Msg) *Modal {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

// fillForm opens the review form and types the three fields.
func fillForm(m *Modal, title, desc, rating string) *Modal {
	m = send(m, tuitest.KeyPress('a'))
	if title != "" {
		m = send(m, tuitest.KeyPressString(title))
	}
	m = send(m, tuitest.KeyTab())
	if desc != "" {
		m = send(m, tuitest.KeyPressString(desc))
	}
	m = send(m, tuitest.KeyTab())
	if rating != "" {
		m = send(m, tuitest.KeyPressString(rating))
	}
	return m
}

func notifications(msgs []tea.Msg) []corenotify.Notification {
	var out []corenotify.Notification
	for _, msg := range msgs {
		if n, ok := msg.(corenotify.Notification); ok {
			out = append(out, n)
		}
	}
	return out
}

func TestModal_ShowsCachedFields(t *testing.T) {
	m := NewModal(matrix, &stubCreator{}, 100, 40)

	out := tuitest.StripANSI(m.View())
	assert.Contains(t, out, "The Matrix")
	assert.Contains(t, out, "8.2")
	assert.Contains(t, out, "1999-03-31")
	assert.Contains(t, out, "https://image.tmdb.org/t/p/w500/matrix.jpg")
	assert.Contains(t, out, "hacker learns the truth")
}

func TestModal_NoOverview(t *testing.T) {
	m := NewModal(movie.Movie{ID: 2, OriginalTitle: "Alien"}, &stubCreator{}, 100, 40)

	out := tuitest.StripANSI(m.View())
	assert.Contains(t, out, "Alien")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, movie.NoSynopsis)
}

func TestModal_EscCloses(t *testing.T) {
	m := NewModal(matrix, &stubCreator{}, 100, 40)
	m = send(m, tuitest.KeyEsc())
	assert.True(t, m.Closed())
}

func TestModal_FormCancelReturnsToDetails(t *testing.T) {
	m := NewModal(matrix, &stubCreator{}, 100, 40)

	m = send(m, tuitest.KeyPress('a'))
	require.True(t, m.FormOpen())
	assert.Contains(t, tuitest.StripANSI(m.View()), "Review The Matrix")

	m = send(m, tuitest.KeyEsc())
	assert.False(t, m.FormOpen())
	assert.False(t, m.Closed())
}

func TestForm_ValidationBlocksSubmit(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		desc        string
		rating      string
		wantInvalid []string
	}{
		{name: "all empty", wantInvalid: []string{"title", "description", "rating"}},
		{name: "empty title valid rating", desc: "good", rating: "7", wantInvalid: []string{"title"}},
		{name: "empty description", title: "Wow", rating: "7", wantInvalid: []string{"description"}},
		{name: "rating not a number", title: "Wow", desc: "good", rating: "abc", wantInvalid: []string{"rating"}},
		{name: "rating above range", title: "Wow", desc: "good", rating: "10.1", wantInvalid: []string{"rating"}},
		{name: "rating below range", title: "Wow", desc: "good", rating: "-1", wantInvalid: []string{"rating"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := &stubCreator{}
			m := fillForm(NewModal(matrix, creator, 100, 40), tt.title, tt.desc, tt.rating)

			m, cmd := m.Update(tuitest.Key(tea.KeyCtrlS))

			require.True(t, m.FormOpen())
			f := m.Form()
			assert.False(t, f.Saving())
			assert.Equal(t, review.ValidationMessage, f.Message())
			assert.Empty(t, creator.created, "no request for an invalid draft")

			// The draft stays as typed.
			assert.Equal(t, tt.title, f.Draft().Title)
			assert.Equal(t, tt.rating, f.Draft().Rating)

			errs := review.FieldErrorMap(f.Draft().Validate())
			for _, field := range tt.wantInvalid {
				assert.Contains(t, errs, field)
			}

			ns := notifications(tuitest.Drain(cmd))
			require.Len(t, ns, 1)
			assert.Equal(t, corenotify.LevelError, ns[0].Level)
		})
	}
}

func TestForm_SubmitCreatesReview(t *testing.T) {
	for _, submitKey := range []tea.KeyMsg{tuitest.Key(tea.KeyCtrlS), tuitest.KeyEnter()} {
		t.Run(submitKey.String(), func(t *testing.T) {
			creator := &stubCreator{}
			m := fillForm(NewModal(matrix, creator, 100, 40), "Mind bending", "Still holds up.", "9.5")

			m, cmd := m.Update(submitKey)
			require.True(t, m.Form().Saving())

			msgs := tuitest.Drain(cmd)
			require.Len(t, creator.created, 1)
			got := creator.created[0]
			assert.Equal(t, "The Matrix", got.MovieTitle)
			assert.Equal(t, "/matrix.jpg", got.PosterPath)
			assert.Equal(t, "Mind bending", got.Title)
			assert.Equal(t, "Still holds up.", got.Description)
			assert.InDelta(t, 9.5, got.Rating, 0.0001)
			assert.Zero(t, got.ID)

			var follow []tea.Msg
			for _, msg := range msgs {
				var next tea.Cmd
				m, next = m.Update(msg)
				follow = append(follow, tuitest.Drain(next)...)
			}

			assert.True(t, m.Closed())
			assert.False(t, m.FormOpen())

			var submitted *ReviewSubmittedMsg
			for _, msg := range follow {
				if s, ok := msg.(ReviewSubmittedMsg); ok {
					submitted = &s
				}
			}
			require.NotNil(t, submitted)
			assert.Equal(t, ReviewSubmittedMsg{
				MovieTitle:  "The Matrix",
				Title:       "Mind bending",
				Description: "Still holds up.",
				Rating:      9.5,
			}, *submitted)

			ns := notifications(follow)
			require.Len(t, ns, 1)
			assert.Equal(t, corenotify.LevelSuccess, ns[0].Level)
		})
	}
}

func TestForm_CreateFailureKeepsDraft(t *testing.T) {
	creator := &stubCreator{err: &api.TransportError{Op: "create review", Err: errors.New("connection refused")}}
	m := fillForm(NewModal(matrix, creator, 100, 40), "Mind bending", "Still holds up.", "9")

	m, cmd := m.Update(tuitest.Key(tea.KeyCtrlS))
	var follow []tea.Msg
	for _, msg := range tuitest.Drain(cmd) {
		var next tea.Cmd
		m, next = m.Update(msg)
		follow = append(follow, tuitest.Drain(next)...)
	}

	require.True(t, m.FormOpen())
	assert.False(t, m.Closed())
	f := m.Form()
	assert.False(t, f.Saving())
	assert.False(t, f.Done())
	assert.Equal(t, api.MsgNetwork, f.Message())
	assert.Equal(t, "Mind bending", f.Draft().Title)

	ns := notifications(follow)
	require.Len(t, ns, 1)
	assert.Equal(t, corenotify.LevelError, ns[0].Level)
	assert.Equal(t, api.MsgNetwork, ns[0].Message)
}

func TestForm_KeysIgnoredWhileSaving(t *testing.T) {
	creator := &stubCreator{}
	m := fillForm(NewModal(matrix, creator, 100, 40), "T", "D", "5")

	m, _ = m.Update(tuitest.Key(tea.KeyCtrlS))
	require.True(t, m.Form().Saving())

	m = send(m, tuitest.KeyEsc(), tuitest.KeyPress('x'))
	assert.True(t, m.FormOpen())
	assert.Equal(t, "5", m.Form().Draft().Rating)
}
