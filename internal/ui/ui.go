package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/services"
	"github.com/desertthunder/gigx/internal/session"
	"github.com/desertthunder/gigx/internal/shared"
	"github.com/desertthunder/gigx/internal/tasks"
	"github.com/desertthunder/gigx/internal/views"
)

// ViewState represents the current screen in the TUI.
type ViewState int

const (
	LoginView ViewState = iota
	DirectoryView
	DetailView
	DashboardView
	ProfileFormView
	OrganizerView
	MessagesView
	BookingRequestView
	ExportView
)

func (v ViewState) String() string {
	switch v {
	case LoginView:
		return "Sign in"
	case DirectoryView:
		return "Artists"
	case DetailView:
		return "Artist"
	case DashboardView:
		return "Dashboard"
	case ProfileFormView:
		return "Profile"
	case OrganizerView:
		return "Bookings"
	case MessagesView:
		return "Messages"
	case BookingRequestView:
		return "Book artist"
	case ExportView:
		return "Export"
	default:
		return ""
	}
}

// viewFor maps a navigation target to its screen. Users without a dedicated dashboard land on the directory.
func viewFor(p session.Page) ViewState {
	switch p {
	case session.PageArtists, session.PageDashboard:
		return DirectoryView
	case session.PageArtistDashboard:
		return DashboardView
	case session.PageOrganizerDashboard:
		return OrganizerView
	case session.PageMessages:
		return MessagesView
	case session.PageBookingRequest:
		return BookingRequestView
	default:
		return LoginView
	}
}

// Deps holds the controllers the TUI drives. All views share one session and one API.
type Deps struct {
	Session        *session.Session
	Navigator      *Navigator
	API            services.Marketplace
	Auth           *views.Auth
	Directory      *views.Directory
	Detail         *views.ArtistDetail
	Dashboard      *views.Dashboard
	Bookings       *views.Bookings
	Messages       *views.Messages
	BookingRequest *views.BookingRequest
	Roster         *tasks.RosterEngine
	Prices         *shared.PriceFormatter
	ExportFormat   string
	ExportDir      string
	ExportWorkers  int
	ExportRate     float64
	Logger         *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	deps   Deps
	view   ViewState
	width  int
	height int

	loading bool
	spinner spinner.Model
	status  string
	err     error

	login     form
	search    form
	profile   form
	request   form
	compose   form
	searching bool
	composing bool

	artistList  list.Model
	bookingList list.Model

	directory   views.DirectoryModel
	detail      views.DetailModel
	dashboard   views.DashboardModel
	orgBookings views.BookingsModel
	messages    views.MessagesModel
	booking     views.BookingRequestModel

	progressChan chan tasks.ProgressUpdate
	exportDone   chan Msg
	progress     tasks.ProgressUpdate
	result       *tasks.RosterExportResult

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, deps Deps) *Model {
	if deps.Navigator == nil {
		deps.Navigator = NewNavigator()
	}
	if deps.Logger == nil {
		deps.Logger = shared.NewLogger(nil)
	}

	login := newForm("Email", "Password")
	login.mask(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.title

	return &Model{
		ctx:         ctx,
		deps:        deps,
		view:        LoginView,
		spinner:     sp,
		login:       login,
		search:      newForm("Search", "Genre", "Min price", "Max price"),
		profile:     newForm("Stage name", "Genres (comma separated)", "Bio", "Min price", "Max price"),
		request:     newForm("Proposed price", "Technical requirements", "Event id"),
		compose:     newForm("Recipient user id", "Message"),
		artistList:  newList("Artists", true),
		bookingList: newList("Bookings", true),
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init restores the signed-in user, then lands on the role's page.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.deps.Navigator.wait(), m.bootstrap(), m.spinner.Tick)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.artistList.SetSize(msg.Width-4, msg.Height-10)
		m.bookingList.SetSize(msg.Width-4, msg.Height-14)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.forceQuit) {
			return m, tea.Quit
		}
		return m.handleKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgNavigate:
		page := msg.data.(session.Page)
		return m, tea.Batch(m.deps.Navigator.wait(), m.open(page))

	case MsgBootstrapped:
		m.loading = false
		if msg.err != nil {
			m.deps.Logger.Warn("failed to restore session", "error", msg.err)
			m.status = "Could not restore your session. Please sign in."
			m.deps.Session.Navigate(session.PageEntry)
			return m, nil
		}
		user, _ := msg.data.(*models.User)
		if user == nil {
			m.deps.Session.Navigate(session.PageEntry)
			return m, nil
		}
		m.deps.Session.Navigate(session.DestinationFor(user.Role))
		return m, nil

	case MsgLoggedIn:
		m.loading = false
		if m.fail(msg.err) {
			return m, nil
		}
		m.login.reset()
		m.status = ""
		return m, nil

	case MsgDirectoryLoaded:
		m.loading = false
		if m.fail(msg.err) && m.halted(msg.err) {
			return m, nil
		}
		m.directory = msg.data.(views.DirectoryModel)
		m.artistList.SetItems(artistItems(m.directory.Cards))
		m.artistList.Title = fmt.Sprintf("Artists (%d)", len(m.directory.Cards))
		return m, nil

	case MsgDetailLoaded:
		m.loading = false
		if m.fail(msg.err) && m.halted(msg.err) {
			return m, nil
		}
		m.detail = msg.data.(views.DetailModel)
		return m, nil

	case MsgDashboardLoaded:
		m.loading = false
		if m.fail(msg.err) && m.halted(msg.err) {
			return m, nil
		}
		m.setDashboard(msg.data.(views.DashboardModel))
		return m, nil

	case MsgBookingsLoaded:
		m.loading = false
		if m.fail(msg.err) && m.halted(msg.err) {
			return m, nil
		}
		m.orgBookings = msg.data.(views.BookingsModel)
		m.setBookings(m.orgBookings)
		return m, nil

	case MsgProfileSaved:
		m.loading = false
		if m.fail(msg.err) {
			return m, nil
		}
		m.status = "Profile saved."
		m.view = DashboardView
		m.setDashboard(m.deps.Dashboard.Model())
		return m, nil

	case MsgMessagesLoaded:
		m.loading = false
		if m.fail(msg.err) && m.halted(msg.err) {
			return m, nil
		}
		m.messages = msg.data.(views.MessagesModel)
		if m.messages.RecipientID != 0 && m.compose.value(0) == "" {
			m.compose.setValues(fmt.Sprint(m.messages.RecipientID))
		}
		return m, nil

	case MsgBookingRequestOpened:
		m.loading = false
		m.booking = msg.data.(views.BookingRequestModel)
		m.fail(msg.err)
		return m, nil

	case MsgActionDone:
		m.loading = false
		if m.fail(msg.err) {
			return m, nil
		}
		m.status = msg.data.(string)
		return m, nil

	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgExportComplete:
		m.loading = false
		m.result, _ = msg.data.(*tasks.RosterExportResult)
		m.fail(msg.err)
		m.progressChan = nil
		m.exportDone = nil
		return m, nil
	}
	return m, nil
}

// fail records err for display and reports whether there was one. Superseded results are dropped silently
// and an expired session has already navigated to the sign-in screen.
func (m *Model) fail(err error) bool {
	switch {
	case err == nil:
		m.err = nil
		return false
	case views.IsSuperseded(err):
		return true
	case errors.Is(err, shared.ErrUnauthorized):
		m.err = nil
		m.status = "Your session has expired. Please sign in again."
		return true
	default:
		m.err = err
		m.status = ""
		return true
	}
}

// halted reports errors after which the controller kept its previous model.
func (m *Model) halted(err error) bool {
	return views.IsSuperseded(err) || errors.Is(err, shared.ErrUnauthorized) ||
		errors.Is(err, shared.ErrNotAuthenticated) || errors.Is(err, shared.ErrForbidden)
}

func (m *Model) setDashboard(d views.DashboardModel) {
	m.dashboard = d
	m.setBookings(d.Bookings)
}

func (m *Model) setBookings(b views.BookingsModel) {
	m.bookingList.SetItems(bookingItems(b.Cards))
	m.bookingList.Title = fmt.Sprintf("Bookings: %s (%d of %d)", b.Filter, len(b.Visible), len(b.All))
}

// home is the landing page for the signed-in user.
func (m *Model) home() session.Page {
	if !m.deps.Session.Authenticated() {
		return session.PageEntry
	}
	if u := m.deps.Session.User(); u != nil {
		return session.DestinationFor(u.Role)
	}
	return session.PageArtists
}

// open switches to the screen for page and starts its load.
func (m *Model) open(page session.Page) tea.Cmd {
	m.view = viewFor(page)
	m.searching = false
	m.composing = false

	switch m.view {
	case LoginView:
		m.loading = false
		m.dashboard = views.DashboardModel{}
		m.orgBookings = views.BookingsModel{}
		return m.login.reset()
	case DirectoryView:
		return m.searchArtists()
	case DashboardView:
		return m.loadDashboard()
	case OrganizerView:
		return m.loadBookings()
	case MessagesView:
		return m.openMessages()
	case BookingRequestView:
		m.request.reset()
		return m.openBookingRequest(0)
	}
	return nil
}

func (m *Model) selectedArtist() (views.ArtistCard, bool) {
	if it, ok := m.artistList.SelectedItem().(artistItem); ok {
		return it.card, true
	}
	return views.ArtistCard{}, false
}

func (m *Model) selectedBooking() (views.BookingCard, bool) {
	if it, ok := m.bookingList.SelectedItem().(bookingItem); ok {
		return it.card, true
	}
	return views.BookingCard{}, false
}

// nextFilter cycles all, then each booking status.
func nextFilter(current string) string {
	order := []string{views.FilterAll}
	for _, st := range models.BookingStatuses {
		order = append(order, string(st))
	}
	for i, f := range order {
		if f == current {
			return order[(i+1)%len(order)]
		}
	}
	return views.FilterAll
}
