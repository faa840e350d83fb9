package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gsc-community/events-api/internal/domain"
)

const discordAPI = "https://discord.com/api/v10"

// ChatNotifier announces noteworthy changes in the community chat.
type ChatNotifier interface {
	EventCreated(ctx context.Context, event domain.Event) error
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embed struct {
	Title     string       `json:"title"`
	Color     int          `json:"color"`
	Fields    []embedField `json:"fields,omitempty"`
	Timestamp string       `json:"timestamp,omitempty"`
}

type channelMessage struct {
	Embeds []embed `json:"embeds"`
}

type DiscordNotifier struct {
	botToken  string
	channelID string
	client    *http.Client
}

func NewDiscordNotifier(botToken, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		botToken:  botToken,
		channelID: channelID,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *DiscordNotifier) EventCreated(ctx context.Context, event domain.Event) error {
	return n.sendMessage(ctx, channelMessage{
		Embeds: []embed{{
			Title: "📅 New Event Created",
			Color: 0xffa500,
			Fields: []embedField{
				{Name: "Event", Value: event.Title, Inline: true},
				{Name: "Date", Value: event.Date, Inline: true},
				{Name: "Location", Value: event.Location, Inline: true},
				{Name: "Chapter", Value: event.ChapterSlug, Inline: true},
			},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}},
	})
}

func (n *DiscordNotifier) sendMessage(ctx context.Context, msg channelMessage) error {
	if n.botToken == "" || n.channelID == "" {
		return fmt.Errorf("discord bot is not configured")
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	url := fmt.Sprintf("%s/channels/%s/messages", discordAPI, n.channelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Authorization", "Bot "+n.botToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("n.client.Do -> %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("discord message send failed: %d %s", resp.StatusCode, body)
	}

	return nil
}
