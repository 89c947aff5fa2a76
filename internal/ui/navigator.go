package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/gigx/internal/session"
)

// Navigator turns session page changes into TUI messages.
type Navigator struct {
	pages chan session.Page
}

var _ session.Navigator = (*Navigator)(nil)

// NewNavigator creates a navigator with room for a few pending page changes.
func NewNavigator() *Navigator {
	return &Navigator{pages: make(chan session.Page, 8)}
}

// Navigate queues p. When the queue is full the oldest request is dropped.
func (n *Navigator) Navigate(p session.Page) {
	for {
		select {
		case n.pages <- p:
			return
		default:
		}
		select {
		case <-n.pages:
		default:
		}
	}
}

// wait blocks until the next page change.
func (n *Navigator) wait() tea.Cmd {
	return func() tea.Msg {
		return navigateMsg(<-n.pages)
	}
}
