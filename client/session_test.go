package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdvisor struct {
	reply string
	calls int
}

func (s *stubAdvisor) GenerateAdvice(ctx context.Context, worry string) string {
	s.calls++
	return s.reply
}

func TestChatTurn(t *testing.T) {
	adv := &stubAdvisor{reply: "## 위로\n먼저 깊게 숨을 쉬어 보세요."}
	s := NewSession(adv, nil)
	require.NoError(t, s.Navigate(ViewChat))

	s.Type("고민이 있어요")
	ok := s.PressEnter(context.Background(), false)
	require.True(t, ok)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, "고민이 있어요", msgs[0].Content)
	assert.Equal(t, RoleAssistant, msgs[1].Role)
	assert.Equal(t, adv.reply, msgs[1].Content)
	assert.NotEqual(t, msgs[0].ID, msgs[1].ID)

	assert.False(t, s.Loading())
	assert.Nil(t, s.tickerStop, "elapsed ticker must be stopped after the turn")
	assert.Equal(t, "", s.Draft())
	assert.Equal(t, 1, adv.calls)
}

func TestModifierEnterInsertsNewline(t *testing.T) {
	adv := &stubAdvisor{reply: "x"}
	s := NewSession(adv, nil)

	s.Type("첫 줄")
	ok := s.PressEnter(context.Background(), true)
	assert.False(t, ok, "modifier+enter must not submit")
	s.Type("둘째 줄")

	assert.Equal(t, "첫 줄\n둘째 줄", s.Draft())
	assert.Empty(t, s.Messages())
	assert.Equal(t, 0, adv.calls)
}

func TestSubmitEmptyDraftIsNoop(t *testing.T) {
	adv := &stubAdvisor{reply: "x"}
	s := NewSession(adv, nil)
	s.Type("   ")
	assert.False(t, s.Submit(context.Background()))
	assert.Empty(t, s.Messages())
}

func TestNavigateTransitions(t *testing.T) {
	s := NewSession(&stubAdvisor{}, nil)
	assert.Equal(t, ViewStart, s.View())

	require.NoError(t, s.Navigate(ViewChat))
	assert.Error(t, s.Navigate(ViewAdmin), "chat only leads back to start")
	require.NoError(t, s.Navigate(ViewStart))
	require.NoError(t, s.Navigate(ViewAdmin))
	require.NoError(t, s.Navigate(ViewStart))
	require.NoError(t, s.Navigate(ViewHome))
}

func TestResetClearsSession(t *testing.T) {
	s := NewSession(&stubAdvisor{reply: "답변"}, nil)
	require.NoError(t, s.Navigate(ViewChat))
	s.Type("고민")
	require.True(t, s.Submit(context.Background()))

	s.Reset()
	assert.Empty(t, s.Messages())
	assert.Equal(t, ViewStart, s.View())
	assert.Equal(t, "", s.Draft())
}

func event(t *testing.T, typ string, payload any) Event {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return Event{Type: typ, Payload: raw}
}

func TestNewAnnouncementEventRaisesToastOffHome(t *testing.T) {
	s := NewSession(&stubAdvisor{}, nil)
	require.NoError(t, s.Navigate(ViewChat))

	ev := event(t, "new_announcement", map[string]any{"id": 1, "title": "공지1", "content": "내용1"})
	require.NoError(t, s.HandleEvent(ev))

	list := s.Announcements()
	require.Len(t, list, 1)
	assert.Equal(t, "공지1", list[0].Title)

	toast := s.Toast()
	require.NotNil(t, toast)
	assert.Equal(t, "공지1", toast.Title)

	// dismiss leaves the already-updated list alone
	s.DismissToast()
	assert.Nil(t, s.Toast())
	assert.Len(t, s.Announcements(), 1)
}

func TestNewAnnouncementEventNoToastOnHome(t *testing.T) {
	s := NewSession(&stubAdvisor{}, nil)
	require.NoError(t, s.Navigate(ViewHome))

	ev := event(t, "new_announcement", map[string]any{"id": 2, "title": "공지2", "content": "내용2"})
	require.NoError(t, s.HandleEvent(ev))
	assert.Nil(t, s.Toast())
}

func TestToastShortcutJumpsHome(t *testing.T) {
	s := NewSession(&stubAdvisor{}, nil)
	require.NoError(t, s.Navigate(ViewChat))
	require.NoError(t, s.HandleEvent(event(t, "new_announcement", map[string]any{"id": 3, "title": "공지3", "content": "c"})))

	s.OpenToast()
	assert.Equal(t, ViewHome, s.View())
	assert.Nil(t, s.Toast())
}

func TestDeleteAnnouncementEvent(t *testing.T) {
	s := NewSession(&stubAdvisor{}, nil)
	require.NoError(t, s.HandleEvent(event(t, "new_announcement", map[string]any{"id": 1, "title": "a", "content": "b"})))
	require.NoError(t, s.HandleEvent(event(t, "new_announcement", map[string]any{"id": 2, "title": "c", "content": "d"})))

	require.NoError(t, s.HandleEvent(event(t, "delete_announcement", map[string]any{"id": 1})))
	list := s.Announcements()
	require.Len(t, list, 1)
	assert.Equal(t, uint(2), list[0].ID)
}

func TestUnknownEventRejected(t *testing.T) {
	s := NewSession(&stubAdvisor{}, nil)
	assert.Error(t, s.HandleEvent(Event{Type: "mystery"}))
}

func TestRateReportsToServer(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/ratings", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"id": 7}`))
	}))
	defer srv.Close()

	adv := &stubAdvisor{reply: "따뜻한 답변"}
	s := NewSession(adv, NewAPIClient(srv.URL))
	s.Type("고민")
	require.True(t, s.Submit(context.Background()))
	msgs := s.Messages()
	assistantID := msgs[1].ID

	require.NoError(t, s.Rate(context.Background(), assistantID, 5))
	assert.Equal(t, assistantID, gotBody["message_id"])
	assert.Equal(t, float64(5), gotBody["rating"])

	msgs = s.Messages()
	require.NotNil(t, msgs[1].Rating)
	assert.Equal(t, 5, *msgs[1].Rating)
}

func TestRateSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"msg":"message_id and rating are required"}`))
	}))
	defer srv.Close()

	s := NewSession(&stubAdvisor{reply: "답"}, NewAPIClient(srv.URL))
	s.Type("고민")
	require.True(t, s.Submit(context.Background()))
	id := s.Messages()[1].ID

	err := s.Rate(context.Background(), id, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message_id and rating are required")
}

func TestRateUnknownMessage(t *testing.T) {
	s := NewSession(&stubAdvisor{}, nil)
	assert.Error(t, s.Rate(context.Background(), "nope", 3))
}
