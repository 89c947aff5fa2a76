package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/gigx/internal/formatter"
	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/shared"
	"github.com/desertthunder/gigx/internal/tasks"
	"github.com/desertthunder/gigx/internal/views"
)

func (m *Model) bootstrap() tea.Cmd {
	if !m.deps.Session.Authenticated() {
		return func() tea.Msg { return bootstrappedMsg(nil, nil) }
	}
	m.loading = true
	return func() tea.Msg {
		user, err := m.deps.API.Bootstrap(m.ctx)
		return bootstrappedMsg(user, err)
	}
}

func (m *Model) submitLogin() tea.Cmd {
	email, password := m.login.value(0), m.login.value(1)
	m.loading = true
	return func() tea.Msg {
		user, _, err := m.deps.Auth.Login(m.ctx, email, password)
		return loggedInMsg(user, err)
	}
}

func (m *Model) searchForm() views.SearchForm {
	return views.SearchForm{
		Search:   m.search.value(0),
		Genre:    m.search.value(1),
		PriceMin: m.search.value(2),
		PriceMax: m.search.value(3),
	}
}

func (m *Model) searchArtists() tea.Cmd {
	form := m.searchForm()
	m.loading = true
	return func() tea.Msg {
		model, err := m.deps.Directory.PerformSearch(m.ctx, form)
		return directoryLoadedMsg(model, err)
	}
}

func (m *Model) showArtist(artistID int) tea.Cmd {
	m.loading = true
	m.detail = views.DetailModel{State: views.StateLoading}
	return func() tea.Msg {
		model, err := m.deps.Detail.Show(m.ctx, artistID)
		return detailLoadedMsg(model, err)
	}
}

func (m *Model) loadDashboard() tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		model, err := m.deps.Dashboard.Load(m.ctx)
		return dashboardLoadedMsg(model, err)
	}
}

func (m *Model) loadBookings() tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		model, err := m.deps.Bookings.Load(m.ctx)
		return bookingsLoadedMsg(model, err)
	}
}

// transition changes the selected booking through v and reports the refreshed list.
func (m *Model) transition(v *views.Bookings, status models.BookingStatus, reload func() Msg) tea.Cmd {
	card, ok := m.selectedBooking()
	if !ok {
		return nil
	}
	m.loading = true
	return func() tea.Msg {
		if _, err := v.Transition(m.ctx, card.BookingID, status); err != nil {
			return actionDoneMsg("", err)
		}
		return reload()
	}
}

func (m *Model) saveProfile() tea.Cmd {
	form := views.ProfileForm{
		StageName: m.profile.value(0),
		Genres:    m.profile.value(1),
		Bio:       m.profile.value(2),
		PriceMin:  m.profile.value(3),
		PriceMax:  m.profile.value(4),
	}
	m.loading = true
	return func() tea.Msg {
		model, err := m.deps.Dashboard.Profile.Save(m.ctx, form)
		return profileSavedMsg(model, err)
	}
}

func (m *Model) openMessages() tea.Cmd {
	m.loading = true
	m.compose.reset()
	return func() tea.Msg {
		model, err := m.deps.Messages.Open(m.ctx)
		return messagesLoadedMsg(model, err)
	}
}

func (m *Model) sendMessage() tea.Cmd {
	raw, content := strings.TrimSpace(m.compose.value(0)), m.compose.value(1)
	var receiverID int
	if raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return func() tea.Msg {
				return actionDoneMsg("", fmt.Errorf("%w: recipient must be a user id", shared.ErrInvalidInput))
			}
		}
		receiverID = id
	}
	m.loading = true
	return func() tea.Msg {
		model, err := m.deps.Messages.Send(m.ctx, receiverID, content)
		return messagesLoadedMsg(model, err)
	}
}

func (m *Model) openBookingRequest(artistID int) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		model, err := m.deps.BookingRequest.Open(m.ctx, artistID)
		return bookingRequestOpenedMsg(model, err)
	}
}

func (m *Model) submitBookingRequest() tea.Cmd {
	form := views.BookingForm{
		ProposedPrice:         m.request.value(0),
		TechnicalRequirements: m.request.value(1),
		EventID:               m.request.value(2),
	}
	m.loading = true
	return func() tea.Msg {
		booking, err := m.deps.BookingRequest.Submit(m.ctx, form)
		if err != nil {
			return actionDoneMsg("", err)
		}
		return actionDoneMsg(fmt.Sprintf("Booking #%d requested.", booking.BookingID), nil)
	}
}

// detailAction runs one of the detail page hand-offs. Success navigates away on its own.
func (m *Model) detailAction(action func() error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg("", action())
	}
}

func (m *Model) logout() tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg("Signed out.", m.deps.Auth.Logout())
	}
}

// startExport runs the roster export for the directory's current filters.
func (m *Model) startExport() tea.Cmd {
	if m.deps.Roster == nil {
		return nil
	}
	format, err := formatter.ParseFormat(m.deps.ExportFormat)
	if err != nil {
		return func() tea.Msg { return actionDoneMsg("", err) }
	}

	m.view = ExportView
	m.loading = true
	m.result = nil
	m.err = nil
	m.progress = tasks.ProgressUpdate{Message: "Starting export..."}
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	m.exportDone = make(chan Msg, 1)

	opts := tasks.RosterExportOpts{
		Format:     format,
		OutputDir:  m.deps.ExportDir,
		NumWorkers: m.deps.ExportWorkers,
		RateLimit:  m.deps.ExportRate,
		Filters:    m.directory.Filters,
	}
	prog, done := m.progressChan, m.exportDone
	go func() {
		result, err := m.deps.Roster.Export(m.ctx, prog, opts)
		done <- exportCompleteMsg(result, err)
	}()

	return m.waitForProgress()
}

// waitForProgress delivers the next progress update, or the result once the export finishes.
func (m *Model) waitForProgress() tea.Cmd {
	prog, done := m.progressChan, m.exportDone
	if done == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case update := <-prog:
			return progressUpdateMsg(update)
		case msg := <-done:
			return msg
		}
	}
}
