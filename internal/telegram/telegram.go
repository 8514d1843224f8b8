package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const (
	timeout = 10 * time.Second

	// MaxMessageLength is the Bot API limit for one text message, in characters
	MaxMessageLength = 4096
)

// Client represents a Telegram Bot API client bound to one chat
type Client struct {
	bot    *bot.Bot
	chatID string
}

// Option configures a Client
type Option func(*options)

type options struct {
	serverURL  string
	httpClient *http.Client
}

// WithServerURL points the client at a different Bot API server (a local Bot API server or a test double)
func WithServerURL(url string) Option {
	return func(o *options) {
		o.serverURL = url
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, opts ...Option) (*Client, error) {
	if botToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if chatID == "" {
		return nil, fmt.Errorf("chat ID is required")
	}

	o := options{httpClient: &http.Client{Timeout: timeout}}
	for _, opt := range opts {
		opt(&o)
	}

	botOpts := []bot.Option{
		// Only sending is needed; no getMe round trip or update polling
		bot.WithSkipGetMe(),
		bot.WithHTTPClient(timeout, o.httpClient),
	}
	if o.serverURL != "" {
		botOpts = append(botOpts, bot.WithServerURL(strings.TrimRight(o.serverURL, "/")))
	}

	b, err := bot.New(botToken, botOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating bot: %w", err)
	}

	return &Client{
		bot:    b,
		chatID: chatID,
	}, nil
}

// SendMessage sends an HTML text message to the configured chat
func (c *Client) SendMessage(ctx context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("message text is required")
	}
	if n := utf8.RuneCountInString(text); n > MaxMessageLength {
		return fmt.Errorf("message is %d characters, limit is %d", n, MaxMessageLength)
	}

	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	return nil
}
