package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Announcement mirrors the server JSON shape.
type Announcement struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// APIClient talks to the announcement/rating HTTP API. Every call returns
// an error for the caller to render; nothing fails silently.
type APIClient struct {
	baseURL string
	http    *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (a *APIClient) ListAnnouncements(ctx context.Context) ([]Announcement, error) {
	var list []Announcement
	if err := a.do(ctx, http.MethodGet, "/api/announcements", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (a *APIClient) CreateAnnouncement(ctx context.Context, title, content string) (Announcement, error) {
	var created Announcement
	body := map[string]string{"title": title, "content": content}
	if err := a.do(ctx, http.MethodPost, "/api/announcements", body, &created); err != nil {
		return Announcement{}, err
	}
	return created, nil
}

func (a *APIClient) DeleteAnnouncement(ctx context.Context, id uint) error {
	return a.do(ctx, http.MethodDelete, fmt.Sprintf("/api/announcements/%d", id), nil, nil)
}

func (a *APIClient) CreateRating(ctx context.Context, messageID string, rating int) (uint, error) {
	var resp struct {
		ID uint `json:"id"`
	}
	body := map[string]any{"message_id": messageID, "rating": rating}
	if err := a.do(ctx, http.MethodPost, "/api/ratings", body, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (a *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read error: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody struct {
			Msg string `json:"msg"`
		}
		if json.Unmarshal(raw, &errBody) == nil && errBody.Msg != "" {
			return fmt.Errorf("server: %s (status %d)", errBody.Msg, resp.StatusCode)
		}
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
