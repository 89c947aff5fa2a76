package views

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/session"
	"github.com/desertthunder/gigx/internal/shared"
	tu "github.com/desertthunder/gigx/internal/testing"
)

func TestMessages(t *testing.T) {
	ctx := context.Background()

	t.Run("Open consumes the recipient hand-off", func(t *testing.T) {
		sess, store, _ := tu.NewTestSession(t)
		_ = sess.SetToken("tok")
		sess.SetUser(&models.User{ID: 2, Role: models.RoleOrganizer})
		_ = sess.SetHandoff(session.HandoffMessageRecipient, "40")
		f := &fakeMarket{messages: []models.Message{
			{MessageID: 1, SenderID: 2, ReceiverID: 40, Content: "hi"},
			{MessageID: 2, SenderID: 40, ReceiverID: 2, Content: "hello"},
		}}
		v := NewMessages(f, sess, quietLogger())

		m, err := v.Open(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.RecipientID != 40 {
			t.Errorf("recipient = %d", m.RecipientID)
		}
		if store.Has(session.HandoffMessageRecipient) {
			t.Error("hand-off should be consumed")
		}
		if !m.Cards[0].Outgoing || m.Cards[0].Peer != "User #40" {
			t.Errorf("card 0 = %+v", m.Cards[0])
		}
		if m.Cards[1].Outgoing || !m.Cards[1].Unread {
			t.Errorf("card 1 = %+v", m.Cards[1])
		}
	})

	t.Run("Send uses the handed-over recipient", func(t *testing.T) {
		sess, _, _ := tu.NewTestSession(t)
		sess.SetUser(&models.User{ID: 2, Role: models.RoleOrganizer})
		_ = sess.SetHandoff(session.HandoffMessageRecipient, "40")
		f := &fakeMarket{}
		v := NewMessages(f, sess, quietLogger())
		_, _ = v.Open(ctx)

		m, err := v.Send(ctx, 0, "  are you free?  ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.sent) != 1 || f.sent[0].ReceiverID != 40 || f.sent[0].Content != "are you free?" {
			t.Errorf("sent %+v", f.sent)
		}
		if len(m.Messages) != 1 {
			t.Errorf("inbox should reload, got %d", len(m.Messages))
		}
	})

	t.Run("Send without recipient", func(t *testing.T) {
		sess, _, _ := tu.NewTestSession(t)
		v := NewMessages(&fakeMarket{}, sess, quietLogger())
		if _, err := v.Send(ctx, 0, "hi"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("Send empty content", func(t *testing.T) {
		sess, _, _ := tu.NewTestSession(t)
		f := &fakeMarket{}
		v := NewMessages(f, sess, quietLogger())
		if _, err := v.Send(ctx, 5, "   "); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if len(f.sent) != 0 {
			t.Error("nothing should be sent")
		}
	})
}

func TestBookingForm(t *testing.T) {
	in := BookingForm{ProposedPrice: "-5", EventID: "abc", TechnicalRequirements: " PA system "}.Input(3)
	if in.ProposedPrice != nil || in.EventID != nil {
		t.Errorf("invalid values should be dropped, got %+v", in)
	}
	if in.TechnicalRequirements != "PA system" || in.ArtistID != 3 {
		t.Errorf("unexpected input %+v", in)
	}

	in = BookingForm{ProposedPrice: "1500", EventID: "9"}.Input(3)
	if in.ProposedPrice == nil || *in.ProposedPrice != 1500 || in.EventID == nil || *in.EventID != 9 {
		t.Errorf("unexpected input %+v", in)
	}
}

func TestBookingRequest(t *testing.T) {
	ctx := context.Background()
	artist := &models.Artist{ArtistID: 4, StageName: "Solo"}

	t.Run("organizer only", func(t *testing.T) {
		sess, _, _ := tu.NewTestSession(t)
		sess.SetUser(&models.User{ID: 1, Role: models.RoleArtist})
		v := NewBookingRequest(&fakeMarket{artist: artist}, sess, testPrices(), quietLogger())
		if _, err := v.Open(ctx, 4); !errors.Is(err, shared.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("Open prefers the hand-off and Submit returns to the dashboard", func(t *testing.T) {
		sess, store, nav := tu.NewTestSession(t)
		_ = sess.SetToken("tok")
		sess.SetUser(&models.User{ID: 2, Role: models.RoleOrganizer})
		_ = sess.SetHandoff(session.HandoffSelectedArtist, "4")
		f := &fakeMarket{artist: artist}
		v := NewBookingRequest(f, sess, testPrices(), quietLogger())

		m, err := v.Open(ctx, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Artist.ArtistID != 4 || store.Has(session.HandoffSelectedArtist) {
			t.Errorf("unexpected model %+v", m)
		}

		b, err := v.Submit(ctx, BookingForm{ProposedPrice: "20000"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.BookingID != 55 || f.createdBookings[0].ArtistID != 4 {
			t.Errorf("unexpected booking %+v", b)
		}
		if nav.Last() != session.PageOrganizerDashboard {
			t.Errorf("expected organizer dashboard, got %q", nav.Last())
		}
	})

	t.Run("Open without any artist", func(t *testing.T) {
		sess, _, _ := tu.NewTestSession(t)
		sess.SetUser(&models.User{ID: 2, Role: models.RoleOrganizer})
		v := NewBookingRequest(&fakeMarket{}, sess, testPrices(), quietLogger())
		if _, err := v.Open(ctx, 0); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}
