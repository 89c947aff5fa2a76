package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/gigx/internal/formatter"
	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/session"
	"github.com/desertthunder/gigx/internal/views"
)

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case LoginView:
		return m.handleLoginKeys(msg)
	case DirectoryView:
		return m.handleDirectoryKeys(msg)
	case DetailView:
		return m.handleDetailKeys(msg)
	case DashboardView:
		return m.handleDashboardKeys(msg)
	case ProfileFormView:
		return m.handleProfileFormKeys(msg)
	case OrganizerView:
		return m.handleOrganizerKeys(msg)
	case MessagesView:
		return m.handleMessagesKeys(msg)
	case BookingRequestView:
		return m.handleBookingRequestKeys(msg)
	case ExportView:
		return m.handleExportKeys(msg)
	}
	return m, nil
}

// handleFormKeys moves focus and forwards typing. submit runs on enter in the last field or on save.
func (m *Model) handleFormKeys(f *form, msg tea.KeyMsg, submit func() tea.Cmd) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.save):
		return submit()
	case key.Matches(msg, m.keys.enter):
		if f.last() {
			return submit()
		}
		return f.next()
	case key.Matches(msg, m.keys.next), msg.Type == tea.KeyDown:
		return f.next()
	case key.Matches(msg, m.keys.prev), msg.Type == tea.KeyUp:
		return f.prev()
	}
	return f.update(msg)
}

// handleNavKeys covers the keys shared by the signed-in screens. handled is false when msg is not one of them.
func (m *Model) handleNavKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.artists):
		m.deps.Session.Navigate(session.PageArtists)
		return nil, true
	case key.Matches(msg, m.keys.home):
		m.deps.Session.Navigate(m.home())
		return nil, true
	case key.Matches(msg, m.keys.message):
		if !m.deps.Session.Authenticated() {
			return nil, false
		}
		m.deps.Session.Navigate(session.PageMessages)
		return nil, true
	case key.Matches(msg, m.keys.logout):
		if !m.deps.Session.Authenticated() {
			return nil, false
		}
		return m.logout(), true
	}
	return nil, false
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.back) {
		m.deps.Session.Navigate(session.PageArtists)
		return m, nil
	}
	return m, m.handleFormKeys(&m.login, msg, m.submitLogin)
}

func (m *Model) handleDirectoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		if key.Matches(msg, m.keys.back) {
			m.searching = false
			return m, nil
		}
		return m, m.handleFormKeys(&m.search, msg, func() tea.Cmd {
			m.searching = false
			return m.searchArtists()
		})
	}

	switch {
	case key.Matches(msg, m.keys.search):
		m.searching = true
		return m, m.search.setFocus(0)
	case key.Matches(msg, m.keys.layout):
		m.directory = m.deps.Directory.ToggleLayout("")
		m.artistList.SetDelegate(newDelegate(m.directory.Layout == views.LayoutGrid))
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		return m, m.searchArtists()
	case key.Matches(msg, m.keys.export):
		return m, m.startExport()
	case key.Matches(msg, m.keys.enter):
		if card, ok := m.selectedArtist(); ok {
			m.view = DetailView
			return m, m.showArtist(card.ArtistID)
		}
		return m, nil
	case key.Matches(msg, m.keys.back):
		if !m.deps.Session.Authenticated() {
			m.deps.Session.Navigate(session.PageEntry)
		}
		return m, nil
	}
	if cmd, ok := m.handleNavKeys(msg); ok {
		return m, cmd
	}

	var cmd tea.Cmd
	m.artistList, cmd = m.artistList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.view = DirectoryView
		m.err = nil
		return m, nil
	case key.Matches(msg, m.keys.book):
		return m, m.detailAction(m.deps.Detail.RequestBooking)
	case key.Matches(msg, m.keys.message):
		return m, m.detailAction(m.deps.Detail.MessageArtist)
	}
	cmd, _ := m.handleNavKeys(msg)
	return m, cmd
}

func (m *Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	bookings := m.deps.Dashboard.Bookings
	reload := func() Msg { return dashboardLoadedMsg(m.deps.Dashboard.Model(), nil) }

	switch {
	case key.Matches(msg, m.keys.confirm):
		return m, m.transition(bookings, models.StatusConfirmed, reload)
	case key.Matches(msg, m.keys.decline):
		return m, m.transition(bookings, models.StatusDeclined, reload)
	case key.Matches(msg, m.keys.filter):
		model, err := bookings.Filter(nextFilter(m.dashboard.Bookings.Filter))
		if !m.fail(err) {
			m.dashboard.Bookings = model
			m.setBookings(model)
		}
		return m, nil
	case key.Matches(msg, m.keys.edit):
		p := m.dashboard.Profile
		f := p.Form
		if p.Mode != views.ModeCreate {
			f = views.FormFromArtist(p.Artist)
		}
		m.profile.setValues(f.StageName, f.Genres, f.Bio, f.PriceMin, f.PriceMax)
		m.view = ProfileFormView
		return m, m.profile.setFocus(0)
	case key.Matches(msg, m.keys.refresh):
		return m, m.loadDashboard()
	}
	if cmd, ok := m.handleNavKeys(msg); ok {
		return m, cmd
	}

	var cmd tea.Cmd
	m.bookingList, cmd = m.bookingList.Update(msg)
	return m, cmd
}

func (m *Model) handleProfileFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.back) {
		m.view = DashboardView
		m.err = nil
		return m, nil
	}
	return m, m.handleFormKeys(&m.profile, msg, m.saveProfile)
}

func (m *Model) handleOrganizerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	reload := func() Msg { return bookingsLoadedMsg(m.deps.Bookings.Model(), nil) }

	switch {
	case key.Matches(msg, m.keys.cancel):
		return m, m.transition(m.deps.Bookings, models.StatusCancelled, reload)
	case key.Matches(msg, m.keys.filter):
		model, err := m.deps.Bookings.Filter(nextFilter(m.orgBookings.Filter))
		if !m.fail(err) {
			m.orgBookings = model
			m.setBookings(model)
		}
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		return m, m.loadBookings()
	}
	if cmd, ok := m.handleNavKeys(msg); ok {
		return m, cmd
	}

	var cmd tea.Cmd
	m.bookingList, cmd = m.bookingList.Update(msg)
	return m, cmd
}

func (m *Model) handleMessagesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.composing {
		if key.Matches(msg, m.keys.back) {
			m.composing = false
			return m, nil
		}
		return m, m.handleFormKeys(&m.compose, msg, func() tea.Cmd {
			m.composing = false
			return m.sendMessage()
		})
	}

	switch {
	case key.Matches(msg, m.keys.enter):
		m.composing = true
		focus := 0
		if m.compose.value(0) != "" {
			focus = 1
		}
		return m, m.compose.setFocus(focus)
	case key.Matches(msg, m.keys.refresh):
		m.loading = true
		return m, func() tea.Msg {
			model, err := m.deps.Messages.Load(m.ctx)
			return messagesLoadedMsg(model, err)
		}
	case key.Matches(msg, m.keys.back):
		m.deps.Session.Navigate(m.home())
		return m, nil
	}
	cmd, _ := m.handleNavKeys(msg)
	return m, cmd
}

func (m *Model) handleBookingRequestKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.back) {
		m.deps.Session.Navigate(m.home())
		return m, nil
	}
	return m, m.handleFormKeys(&m.request, msg, m.submitBookingRequest)
}

func (m *Model) handleExportKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.exportDone != nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.enter):
		m.view = DirectoryView
		return m, nil
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	var helpKeys []key.Binding

	switch m.view {
	case LoginView:
		body = m.renderLogin()
		helpKeys = []key.Binding{m.keys.next, m.keys.enter, m.keys.back, m.keys.forceQuit}
	case DirectoryView:
		body = m.renderDirectory()
		helpKeys = []key.Binding{m.keys.enter, m.keys.search, m.keys.layout, m.keys.export, m.keys.home, m.keys.quit}
	case DetailView:
		body = formatter.RenderDetail(m.detail)
		helpKeys = []key.Binding{m.keys.back}
		if m.detail.CanBook {
			helpKeys = append(helpKeys, m.keys.book, m.keys.message)
		}
	case DashboardView:
		body = m.renderDashboard()
		helpKeys = []key.Binding{m.keys.confirm, m.keys.decline, m.keys.filter, m.keys.edit, m.keys.artists, m.keys.logout}
	case ProfileFormView:
		title := "Edit profile"
		if m.dashboard.Profile.Mode == views.ModeCreate {
			title = "Create profile"
		}
		body = styles.title.Render(title) + "\n" + m.profile.view()
		helpKeys = []key.Binding{m.keys.next, m.keys.save, m.keys.back}
	case OrganizerView:
		body = m.renderOrganizer()
		helpKeys = []key.Binding{m.keys.cancel, m.keys.filter, m.keys.artists, m.keys.message, m.keys.logout}
	case MessagesView:
		body = m.renderMessages()
		helpKeys = []key.Binding{m.keys.enter, m.keys.refresh, m.keys.back}
	case BookingRequestView:
		body = m.renderBookingRequest()
		helpKeys = []key.Binding{m.keys.next, m.keys.save, m.keys.back}
	case ExportView:
		body = m.renderExport()
		if m.exportDone == nil {
			helpKeys = []key.Binding{m.keys.back, m.keys.quit}
		}
	}

	sections := []string{m.renderTabs(), body}
	if line := m.renderStatus(); line != "" {
		sections = append(sections, line)
	}
	sections = append(sections, m.help.ShortHelpView(helpKeys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderTabs() string {
	tabs := []ViewState{DirectoryView}
	if m.deps.Session.Authenticated() {
		switch {
		case m.deps.Session.HasRole(models.RoleArtist):
			tabs = append(tabs, DashboardView)
		case m.deps.Session.HasRole(models.RoleOrganizer):
			tabs = append(tabs, OrganizerView)
		}
		tabs = append(tabs, MessagesView)
	} else {
		tabs = append(tabs, LoginView)
	}

	rendered := make([]string, len(tabs))
	for i, t := range tabs {
		if t == m.view {
			rendered[i] = styles.activeTab.Render(t.String())
		} else {
			rendered[i] = styles.tab.Render(t.String())
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "\n"
}

func (m *Model) renderStatus() string {
	switch {
	case m.loading:
		return m.spinner.View() + " Loading..."
	case m.err != nil:
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	case m.status != "":
		return styles.ok.Render(m.status)
	default:
		return ""
	}
}

func (m *Model) renderLogin() string {
	return styles.title.Render("Sign in to gigx") + "\n" +
		m.login.view() +
		styles.help.Render("No account? Run: gigx auth register")
}

func (m *Model) renderDirectory() string {
	if m.searching {
		return styles.title.Render("Search artists") + "\n" + m.search.view()
	}
	switch {
	case m.directory.Err != nil:
		return styles.err.Render(m.directory.Err.Error())
	case m.directory.Empty:
		return styles.warn.Render("No artists found. Try different filters.")
	}
	return m.artistList.View()
}

func (m *Model) renderDashboard() string {
	d := m.dashboard
	var b strings.Builder
	if d.User != nil {
		b.WriteString(styles.title.Render("Dashboard: " + d.User.Email))
		b.WriteString("\n")
	}
	b.WriteString(formatter.RenderStats(d.Stats))
	b.WriteString("\n")
	b.WriteString(styles.label.Render("Profile"))
	b.WriteString("\n")
	b.WriteString(formatter.RenderProfile(d.Profile, m.deps.Prices))
	b.WriteString("\n")
	if d.Bookings.Err != nil {
		b.WriteString(styles.err.Render(d.Bookings.Err.Error()))
	} else {
		b.WriteString(m.bookingList.View())
	}
	b.WriteString("\n")
	b.WriteString(styles.label.Render("Reviews"))
	b.WriteString("\n")
	switch {
	case d.Reviews.Skipped:
		b.WriteString("Create a profile to receive reviews.\n")
	case d.Reviews.Err != nil:
		b.WriteString(styles.err.Render(d.Reviews.Err.Error()))
	default:
		b.WriteString(reviewLines(d.Reviews.Cards))
	}
	return b.String()
}

func (m *Model) renderOrganizer() string {
	if m.orgBookings.Err != nil {
		return styles.err.Render(m.orgBookings.Err.Error())
	}
	var b strings.Builder
	b.WriteString(m.bookingList.View())
	if card, ok := m.selectedBooking(); ok && card.Requirements != "" {
		b.WriteString("\n")
		b.WriteString(styles.help.Render(card.Requirements))
	}
	return b.String()
}

func (m *Model) renderMessages() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Messages"))
	b.WriteString("\n")
	b.WriteString(formatter.RenderMessages(m.messages))
	if m.composing {
		b.WriteString("\n")
		b.WriteString(m.compose.view())
	}
	return b.String()
}

func (m *Model) renderBookingRequest() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Request a booking"))
	b.WriteString("\n")
	if m.booking.Artist != nil {
		b.WriteString(formatter.RenderArtistCard(m.booking.Card))
		b.WriteString("\n")
	}
	b.WriteString(m.request.view())
	return b.String()
}

func (m *Model) renderExport() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Exporting roster"))
	b.WriteString("\n")

	if m.exportDone != nil {
		b.WriteString(fmt.Sprintf("[%s] %d/%d\n", m.progress.Phase, m.progress.Step, m.progress.Total))
		b.WriteString(m.progress.Message)
		return b.String()
	}

	r := m.result
	if r == nil {
		return b.String()
	}
	if r.FailedExports == 0 {
		b.WriteString(styles.ok.Render("✓ Export complete"))
	} else {
		b.WriteString(styles.warn.Render(fmt.Sprintf("Export finished with %d failures", r.FailedExports)))
	}
	b.WriteString(fmt.Sprintf("\n\nArtists:  %d\nExported: %d\nFailed:   %d\nOutput:   %s\n",
		r.TotalArtists, r.SuccessfulExports, r.FailedExports, r.OutputDirectory))
	if r.ManifestPath != "" {
		b.WriteString(fmt.Sprintf("Manifest: %s\n", r.ManifestPath))
	}
	if r.Cancelled {
		b.WriteString(styles.warn.Render("Export was cancelled; results are partial."))
		b.WriteString("\n")
	}
	for _, res := range r.Results {
		if res.Error != nil {
			b.WriteString(fmt.Sprintf("  • %s: %v\n", res.StageName, res.Error))
		}
	}
	return b.String()
}
