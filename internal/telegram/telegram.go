package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const timeout = 10 * time.Second

// apiBaseURL is a variable so tests can point the client at a local server.
var apiBaseURL = "https://api.telegram.org/bot"

var (
	// ErrMissingToken is returned by NewClient without a bot token.
	ErrMissingToken = errors.New("bot token is required")
	// ErrMissingChatID is returned by NewClient without a chat ID.
	ErrMissingChatID = errors.New("chat ID is required")
)

// Client represents a Telegram Bot API client
type Client struct {
	botToken   string
	chatID     string
	httpClient *http.Client
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string) (*Client, error) {
	if botToken == "" {
		return nil, ErrMissingToken
	}
	if chatID == "" {
		return nil, ErrMissingChatID
	}

	return &Client{
		botToken: botToken,
		chatID:   chatID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// APIError is a failed Bot API call.
type APIError struct {
	Status      int
	Description string
}

func (e *APIError) Error() string {
	if e.Status != http.StatusOK {
		return fmt.Sprintf("telegram API error (status %d): %s", e.Status, e.Description)
	}
	return "telegram API error: " + e.Description
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage sends an HTML message to the configured chat. A rejected call
// returns an *APIError.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("message text is required")
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:                c.chatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	return c.call(ctx, "sendMessage", body)
}

func (c *Client) call(ctx context.Context, method string, body []byte) error {
	endpoint := apiBaseURL + c.botToken + "/" + method
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode, Description: string(raw)}
	}

	var result apiResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	if !result.OK {
		return &APIError{Status: resp.StatusCode, Description: result.Description}
	}
	return nil
}
