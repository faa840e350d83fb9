package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gsc-community/events-api/internal/domain"
)

// Dispatcher triggers the static-site pipeline so new event pages get
// generated and deployed.
type Dispatcher interface {
	EventCreated(ctx context.Context, event domain.Event) error
}

type GitHubDispatcher struct {
	token     string
	repoOwner string
	repoName  string
	client    *http.Client
}

func NewGitHubDispatcher(token, repoOwner, repoName string) *GitHubDispatcher {
	return &GitHubDispatcher{
		token:     token,
		repoOwner: repoOwner,
		repoName:  repoName,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *GitHubDispatcher) EventCreated(ctx context.Context, event domain.Event) error {
	return d.dispatch(ctx, "event-created", map[string]string{
		"event_id":               event.ID,
		"event_title":            event.Title,
		"event_slug":             event.Slug,
		"event_date":             event.Date,
		"event_end_date":         event.EndDate,
		"event_location":         event.Location,
		"event_description":      event.Description,
		"event_sessionize_id":    event.SessionizeAPIID,
		"event_registration_cap": strconv.Itoa(event.RegistrationCap),
		"chapter_slug":           event.ChapterSlug,
	})
}

// dispatch posts a repository_dispatch with a flat key/value payload.
func (d *GitHubDispatcher) dispatch(ctx context.Context, eventType string, payload map[string]string) error {
	if d.token == "" || d.repoOwner == "" || d.repoName == "" {
		return fmt.Errorf("github dispatch is not configured")
	}

	body, err := json.Marshal(map[string]any{
		"event_type":     eventType,
		"client_payload": payload,
	})
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	url := fmt.Sprintf("https://api.github.com/repos/%s/%s/dispatches", d.repoOwner, d.repoName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+d.token)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("d.client.Do -> %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("github dispatch failed: %d %s", resp.StatusCode, respBody)
	}

	return nil
}
