package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// View is one of the four screens of the client application.
type View string

const (
	ViewStart View = "start" // landing
	ViewChat  View = "chat"
	ViewHome  View = "home" // announcements list
	ViewAdmin View = "admin"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat bubble. Messages live only inside a Session and are
// discarded on reset; nothing here is ever persisted.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
	Rating    *int
}

// Toast is the dismissible alert raised when an announcement arrives while
// the user is not on the announcements view.
type Toast struct {
	Title string
}

// Advisor produces a counseling reply for a worry. It never fails; the
// implementation substitutes a fallback string on upstream errors.
type Advisor interface {
	GenerateAdvice(ctx context.Context, worry string) string
}

// Session owns all client-side state for one tab-equivalent session: the
// current view, the ephemeral chat history, the compose draft, the loading
// ticker and the announcement list mirror.
type Session struct {
	mu sync.Mutex

	id      string
	advisor Advisor
	api     *APIClient

	view     View
	messages []Message
	draft    string

	loading    bool
	elapsed    int
	tickerStop chan struct{}

	toast         *Toast
	announcements []Announcement
}

func NewSession(advisor Advisor, api *APIClient) *Session {
	return &Session{
		id:      uuid.NewString(),
		advisor: advisor,
		api:     api,
		view:    ViewStart,
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Navigate moves between views. From the landing screen any view is
// reachable; every other view only leads back to the landing screen.
func (s *Session) Navigate(v View) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.view == v:
		return nil
	case s.view == ViewStart && (v == ViewChat || v == ViewHome || v == ViewAdmin):
	case v == ViewStart:
	default:
		return fmt.Errorf("cannot navigate from %s to %s", s.view, v)
	}
	s.view = v
	if v == ViewHome {
		s.toast = nil
	}
	return nil
}

// Type appends text to the compose draft.
func (s *Session) Type(text string) {
	s.mu.Lock()
	s.draft += text
	s.mu.Unlock()
}

func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// PressEnter handles the composer key: plain Enter submits the draft,
// Enter with the modifier held inserts a newline instead. It reports
// whether a chat turn ran.
func (s *Session) PressEnter(ctx context.Context, modifier bool) bool {
	if modifier {
		s.mu.Lock()
		s.draft += "\n"
		s.mu.Unlock()
		return false
	}
	return s.Submit(ctx)
}

// Submit runs one chat turn: the user message is appended immediately, the
// elapsed-seconds ticker starts, and the advisor is awaited. The ticker is
// cosmetic only; it never gates or cancels the advice call.
func (s *Session) Submit(ctx context.Context) bool {
	s.mu.Lock()
	worry := strings.TrimSpace(s.draft)
	if worry == "" || s.loading {
		s.mu.Unlock()
		return false
	}
	s.draft = ""
	s.messages = append(s.messages, Message{
		ID:        newMessageID(),
		Role:      RoleUser,
		Content:   worry,
		Timestamp: time.Now(),
	})
	s.loading = true
	s.elapsed = 0
	stop := make(chan struct{})
	s.tickerStop = stop
	s.mu.Unlock()

	go s.runTicker(stop)

	reply := s.advisor.GenerateAdvice(ctx, worry)

	s.mu.Lock()
	s.messages = append(s.messages, Message{
		ID:        newMessageID(),
		Role:      RoleAssistant,
		Content:   reply,
		Timestamp: time.Now(),
	})
	s.loading = false
	s.tickerStop = nil
	s.mu.Unlock()
	close(stop)
	return true
}

func (s *Session) runTicker(stop chan struct{}) {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			s.mu.Lock()
			s.elapsed++
			s.mu.Unlock()
		}
	}
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Elapsed reports whole seconds since the running turn started.
func (s *Session) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Reset discards the chat history and returns to the landing screen.
// Sessions are ephemeral by design; nothing survives a reset.
func (s *Session) Reset() {
	s.mu.Lock()
	s.messages = nil
	s.draft = ""
	s.view = ViewStart
	s.toast = nil
	s.mu.Unlock()
}

// Rate marks an assistant message with a 1-5 score and reports it to the
// server. The error is returned so the view can render it instead of
// swallowing the failure.
func (s *Session) Rate(ctx context.Context, messageID string, rating int) error {
	s.mu.Lock()
	found := false
	for i := range s.messages {
		if s.messages[i].ID == messageID && s.messages[i].Role == RoleAssistant {
			r := rating
			s.messages[i].Rating = &r
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return fmt.Errorf("no assistant message with id %s", messageID)
	}
	_, err := s.api.CreateRating(ctx, messageID, rating)
	return err
}

// HandleEvent applies one realtime event to the local announcement mirror.
// Events are a low-latency hint; RefreshAnnouncements stays the source of
// truth after any listener drop.
func (s *Session) HandleEvent(ev Event) error {
	switch ev.Type {
	case "new_announcement":
		var a Announcement
		if err := json.Unmarshal(ev.Payload, &a); err != nil {
			return fmt.Errorf("bad %s payload: %w", ev.Type, err)
		}
		s.mu.Lock()
		s.announcements = append([]Announcement{a}, s.announcements...)
		if s.view != ViewHome {
			s.toast = &Toast{Title: a.Title}
		}
		s.mu.Unlock()
		return nil
	case "delete_announcement":
		var p struct {
			ID uint `json:"id"`
		}
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return fmt.Errorf("bad %s payload: %w", ev.Type, err)
		}
		s.mu.Lock()
		kept := s.announcements[:0]
		for _, a := range s.announcements {
			if a.ID != p.ID {
				kept = append(kept, a)
			}
		}
		s.announcements = kept
		s.mu.Unlock()
		return nil
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
}

// RefreshAnnouncements replaces the local mirror with the server list.
func (s *Session) RefreshAnnouncements(ctx context.Context) error {
	list, err := s.api.ListAnnouncements(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.announcements = list
	s.mu.Unlock()
	return nil
}

func (s *Session) Announcements() []Announcement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Announcement, len(s.announcements))
	copy(out, s.announcements)
	return out
}

func (s *Session) Toast() *Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.toast == nil {
		return nil
	}
	t := *s.toast
	return &t
}

// DismissToast clears the alert without touching the announcement list.
func (s *Session) DismissToast() {
	s.mu.Lock()
	s.toast = nil
	s.mu.Unlock()
}

// OpenToast is the "view now" shortcut: jump to the announcements view from
// wherever the toast was shown.
func (s *Session) OpenToast() {
	s.mu.Lock()
	s.view = ViewHome
	s.toast = nil
	s.mu.Unlock()
}

func newMessageID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}
