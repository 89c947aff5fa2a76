package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/session"
	"github.com/desertthunder/gigx/internal/tasks"
	"github.com/desertthunder/gigx/internal/views"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
	err  error
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgNavigate MsgKind = iota
	MsgBootstrapped
	MsgLoggedIn
	MsgDirectoryLoaded
	MsgDetailLoaded
	MsgDashboardLoaded
	MsgBookingsLoaded
	MsgProfileSaved
	MsgMessagesLoaded
	MsgBookingRequestOpened
	MsgActionDone
	MsgProgressUpdate
	MsgExportComplete
)

// navigateMsg is the constructor for [MsgNavigate]
func navigateMsg(p session.Page) Msg {
	return Msg{kind: MsgNavigate, data: p}
}

// bootstrappedMsg is the constructor for [MsgBootstrapped]
func bootstrappedMsg(user *models.User, err error) Msg {
	return Msg{kind: MsgBootstrapped, data: user, err: err}
}

// loggedInMsg is the constructor for [MsgLoggedIn]
func loggedInMsg(user *models.User, err error) Msg {
	return Msg{kind: MsgLoggedIn, data: user, err: err}
}

// directoryLoadedMsg is the constructor for [MsgDirectoryLoaded]
func directoryLoadedMsg(m views.DirectoryModel, err error) Msg {
	return Msg{kind: MsgDirectoryLoaded, data: m, err: err}
}

// detailLoadedMsg is the constructor for [MsgDetailLoaded]
func detailLoadedMsg(m views.DetailModel, err error) Msg {
	return Msg{kind: MsgDetailLoaded, data: m, err: err}
}

// dashboardLoadedMsg is the constructor for [MsgDashboardLoaded]
func dashboardLoadedMsg(m views.DashboardModel, err error) Msg {
	return Msg{kind: MsgDashboardLoaded, data: m, err: err}
}

// bookingsLoadedMsg is the constructor for [MsgBookingsLoaded]
func bookingsLoadedMsg(m views.BookingsModel, err error) Msg {
	return Msg{kind: MsgBookingsLoaded, data: m, err: err}
}

// profileSavedMsg is the constructor for [MsgProfileSaved]
func profileSavedMsg(m views.ProfileModel, err error) Msg {
	return Msg{kind: MsgProfileSaved, data: m, err: err}
}

// messagesLoadedMsg is the constructor for [MsgMessagesLoaded]
func messagesLoadedMsg(m views.MessagesModel, err error) Msg {
	return Msg{kind: MsgMessagesLoaded, data: m, err: err}
}

// bookingRequestOpenedMsg is the constructor for [MsgBookingRequestOpened]
func bookingRequestOpenedMsg(m views.BookingRequestModel, err error) Msg {
	return Msg{kind: MsgBookingRequestOpened, data: m, err: err}
}

// actionDoneMsg is the constructor for [MsgActionDone]; status is shown on success.
func actionDoneMsg(status string, err error) Msg {
	return Msg{kind: MsgActionDone, data: status, err: err}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// exportCompleteMsg is the constructor for [MsgExportComplete]
func exportCompleteMsg(result *tasks.RosterExportResult, err error) Msg {
	return Msg{kind: MsgExportComplete, data: result, err: err}
}
