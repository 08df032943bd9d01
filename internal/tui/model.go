// Package tui implements the interactive terminal client.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/reel/internal/api"
	"github.com/colonyops/reel/internal/core/logging"
	"github.com/colonyops/reel/internal/core/notify"
	"github.com/colonyops/reel/internal/core/review"
	"github.com/colonyops/reel/internal/tui/components"
	tuinotify "github.com/colonyops/reel/internal/tui/notify"
	"github.com/colonyops/reel/internal/tui/views/details"
	"github.com/colonyops/reel/internal/tui/views/reviews"
	"github.com/colonyops/reel/internal/tui/views/search"
)

// ReviewService is the review collection as the TUI uses it.
type ReviewService interface {
	ListReviews(ctx context.Context) ([]review.Review, error)
	CreateReview(ctx context.Context, r review.Review) (review.Review, error)
	UpdateReview(ctx context.Context, r review.Review) error
	DeleteReview(ctx context.Context, id int64) error
}

var (
	_ ReviewService = (*api.Client)(nil)
	_ api.Searcher  = (*api.Client)(nil)
)

// Options configures the TUI.
type Options struct {
	Searcher api.Searcher
	Reviews  ReviewService
	Bus      *tuinotify.Bus // optional; a private bus is created when nil
	Warnings []string       // startup warnings shown as toasts
	Build    BuildInfo
}

// Model is the root Bubble Tea model.
type Model struct {
	keys       keyMap
	activeView ViewType
	width      int
	height     int
	quitting   bool

	search      search.View
	reviews     reviews.View
	reviewsSvc  ReviewService
	detailModal *details.Modal
	helpDialog  *components.HelpDialog
	noticeModal *NotificationModal

	notifyBus       *tuinotify.Bus
	toastController *ToastController
	toastView       *ToastView
	history         *NotificationHistory

	build           BuildInfo
	startupWarnings []string
}

// New creates the root model.
func New(opts Options) Model {
	bus := opts.Bus
	if bus == nil {
		bus = tuinotify.NewBus()
	}

	toastCtrl := NewToastController()
	bus.Subscribe(func(n notify.Notification) {
		toastCtrl.Push(n)
	})
	history := NewNotificationHistory(defaultHistorySize)
	bus.Subscribe(history.Add)
	bus.Subscribe(logNotification)

	return Model{
		keys:            defaultKeyMap(),
		activeView:      ViewSearch,
		search:          search.New(opts.Searcher),
		reviews:         reviews.New(opts.Reviews),
		reviewsSvc:      opts.Reviews,
		notifyBus:       bus,
		toastController: toastCtrl,
		toastView:       NewToastView(toastCtrl),
		history:         history,
		build:           opts.Build,
		startupWarnings: opts.Warnings,
	}
}

func logNotification(n notify.Notification) {
	logger := logging.Component("tui")
	logger.Debug().
		Str("level", string(n.Level)).
		Str("message", n.Message).
		Msg("notification")
}

// Init starts the query cursor and shows startup warnings.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.search.Init()}
	for _, w := range m.startupWarnings {
		cmds = append(cmds, tuinotify.Cmd(notify.Notification{Level: notify.LevelWarning, Message: w}))
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the whole TUI.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case notify.Notification:
		m.notifyBus.Publish(msg)
		return m, m.ensureToastTick()
	case toastTickMsg:
		return m.handleToastTick(msg)
	case search.OpenMovieMsg:
		m.detailModal = details.NewModal(msg.Movie, m.reviewsSvc, m.width, m.height)
		return m, nil
	case details.ReviewSubmittedMsg:
		logger := logging.Component("tui")
		logger.Info().
			Str("movie", msg.MovieTitle).
			Str("title", msg.Title).
			Float64("rating", msg.Rating).
			Msg("review submitted")
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.broadcast(msg)
}

// broadcast forwards a non-key message to every sub-model. Each ignores
// messages that are not its own.
func (m Model) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.detailModal != nil {
		var cmd tea.Cmd
		m.detailModal, cmd = m.detailModal.Update(msg)
		cmds = append(cmds, cmd)
		if m.detailModal.Closed() {
			m.detailModal = nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	cmds = append(cmds, cmd)

	m.reviews, cmd = m.reviews.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	contentHeight := m.contentHeight()
	m.search.SetSize(msg.Width, contentHeight)
	m.reviews.SetSize(msg.Width, contentHeight)
	if m.detailModal != nil {
		m.detailModal.SetSize(msg.Width, msg.Height)
	}
	return m, nil
}

func (m Model) handleToastTick(msg toastTickMsg) (tea.Model, tea.Cmd) {
	m.toastController.Prune(timeOf(msg))
	if m.toastController.HasToasts() {
		return m, scheduleToastTick()
	}
	m.toastController.SetTicking(false)
	return m, nil
}

// ensureToastTick starts the expiry tick chain unless one is already running.
func (m *Model) ensureToastTick() tea.Cmd {
	if !m.toastController.HasToasts() || m.toastController.Ticking() {
		return nil
	}
	m.toastController.SetTicking(true)
	return scheduleToastTick()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.helpDialog != nil {
		switch msg.String() {
		case "esc", "?", "q", "enter":
			m.helpDialog = nil
		}
		return m, nil
	}

	if m.noticeModal != nil {
		cmd := m.noticeModal.Update(msg)
		if m.noticeModal.Closed() {
			m.noticeModal = nil
		}
		return m, cmd
	}

	if m.detailModal != nil {
		var cmd tea.Cmd
		m.detailModal, cmd = m.detailModal.Update(msg)
		if m.detailModal.Closed() {
			m.detailModal = nil
		}
		return m, cmd
	}

	if m.activeView == ViewReviews && m.reviews.EditorOpen() {
		var cmd tea.Cmd
		m.reviews, cmd = m.reviews.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.NextTab):
		return m.switchView(m.activeView.next())
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchView(m.activeView.prev())
	}

	if !m.typing() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.helpDialog = components.NewHelpDialog("Keyboard shortcuts", m.keys.helpSections())
			return m, nil
		case key.Matches(msg, m.keys.Notices):
			m.noticeModal = NewNotificationModal(m.history, m.width, m.height)
			return m, nil
		case key.Matches(msg, m.keys.SearchTab):
			return m.switchView(ViewSearch)
		case key.Matches(msg, m.keys.ReviewTab):
			return m.switchView(ViewReviews)
		}
	}

	var cmd tea.Cmd
	switch m.activeView {
	case ViewSearch:
		m.search, cmd = m.search.Update(msg)
	case ViewReviews:
		m.reviews, cmd = m.reviews.Update(msg)
	}
	return m, cmd
}

// typing reports whether printable keys belong to a text input.
func (m Model) typing() bool {
	return m.activeView == ViewSearch && m.search.InputFocused()
}

// switchView activates v. Entering the reviews tab always re-fetches.
func (m Model) switchView(v ViewType) (tea.Model, tea.Cmd) {
	if v == m.activeView && v != ViewReviews {
		return m, nil
	}
	m.activeView = v

	if v == ViewReviews {
		var cmd tea.Cmd
		m.reviews, cmd = m.reviews.Activate()
		return m, cmd
	}
	return m, nil
}

// ActiveView returns the visible tab.
func (m Model) ActiveView() ViewType { return m.activeView }

// DetailsOpen reports whether the movie details modal is showing.
func (m Model) DetailsOpen() bool { return m.detailModal != nil }

// NotificationsOpen reports whether the notification history is showing.
func (m Model) NotificationsOpen() bool { return m.noticeModal != nil }

// HelpOpen reports whether the help dialog is showing.
func (m Model) HelpOpen() bool { return m.helpDialog != nil }

func (m Model) contentHeight() int {
	return max(m.height-2, 1)
}
