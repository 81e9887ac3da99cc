package sendgrid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/troovstudio/troov-backend/internal/platform/ctxutil"
	"github.com/troovstudio/troov-backend/internal/platform/httpx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

type Client interface {
	Send(ctx context.Context, msg Message) (*Result, error)
}

type Config struct {
	APIKey     string        `koanf:"api_key"`
	BaseURL    string        `koanf:"base_url"`
	FromEmail  string        `koanf:"from_email"`
	FromName   string        `koanf:"from_name"`
	Timeout    time.Duration `koanf:"timeout"`
	MaxRetries int           `koanf:"max_retries"`
}

// Configured reports whether enough is set to send mail.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.APIKey) != "" && strings.TrimSpace(c.FromEmail) != ""
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("sendgrid: missing api key")
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.sendgrid.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &client{
		log:        log.With("client", "SendGridClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
}

type Address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type Message struct {
	From       Address
	ReplyTo    *Address
	To         []Address
	Subject    string
	Text       string
	HTML       string
	Categories []string
}

type Result struct {
	StatusCode int
	MessageID  string
}

type wireMessage struct {
	Personalizations []wirePersonalization `json:"personalizations"`
	From             Address               `json:"from"`
	ReplyTo          *Address              `json:"reply_to,omitempty"`
	Subject          string                `json:"subject"`
	Content          []wireContent         `json:"content"`
	Categories       []string              `json:"categories,omitempty"`
}

type wirePersonalization struct {
	To []Address `json:"to"`
}

type wireContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (c *client) Send(ctx context.Context, msg Message) (*Result, error) {
	if strings.TrimSpace(msg.From.Email) == "" {
		msg.From = Address{Email: c.cfg.FromEmail, Name: c.cfg.FromName}
	}
	msg.Subject = strings.TrimSpace(msg.Subject)
	if strings.TrimSpace(msg.From.Email) == "" {
		return nil, fmt.Errorf("sendgrid: from address required")
	}
	if len(msg.To) == 0 {
		return nil, fmt.Errorf("sendgrid: recipient required")
	}
	if msg.Subject == "" {
		return nil, fmt.Errorf("sendgrid: subject required")
	}

	contents := make([]wireContent, 0, 2)
	if t := strings.TrimSpace(msg.Text); t != "" {
		contents = append(contents, wireContent{Type: "text/plain", Value: t})
	}
	if h := strings.TrimSpace(msg.HTML); h != "" {
		contents = append(contents, wireContent{Type: "text/html", Value: h})
	}
	if len(contents) == 0 {
		return nil, fmt.Errorf("sendgrid: text or html body required")
	}

	body, err := json.Marshal(wireMessage{
		Personalizations: []wirePersonalization{{To: msg.To}},
		From:             msg.From,
		ReplyTo:          msg.ReplyTo,
		Subject:          msg.Subject,
		Content:          contents,
		Categories:       msg.Categories,
	})
	if err != nil {
		return nil, err
	}

	var result *Result
	policy := httpx.Policy{MaxRetries: c.cfg.MaxRetries, Backoff: time.Second, MaxWait: 10 * time.Second}
	err = httpx.Retry(ctxutil.Default(ctx), policy, func(ctx context.Context) (*http.Response, error) {
		resp, err := c.post(ctx, "/v3/mail/send", body)
		if err != nil {
			return resp, err
		}
		result = &Result{
			StatusCode: resp.StatusCode,
			MessageID:  strings.TrimSpace(resp.Header.Get("X-Message-Id")),
		}
		return resp, nil
	}, func(attempt int, wait time.Duration, err error) {
		c.log.Warn("SendGrid request retrying", "attempt", attempt, "sleep", wait.String(), "error", err)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *client) post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		he := &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
		var er errorResponse
		if json.Unmarshal(raw, &er) == nil {
			he.Errors = er.Errors
		}
		return resp, he
	}
	return resp, nil
}

type errorItem struct {
	Message string `json:"message"`
	Field   any    `json:"field,omitempty"`
}

type errorResponse struct {
	Errors []errorItem `json:"errors"`
}

type HTTPError struct {
	StatusCode int
	Body       string
	Errors     []errorItem
}

func (e *HTTPError) Error() string {
	if len(e.Errors) > 0 && strings.TrimSpace(e.Errors[0].Message) != "" {
		return fmt.Sprintf("sendgrid http %d: %s", e.StatusCode, e.Errors[0].Message)
	}
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = "<empty body>"
	}
	if len(msg) > 2000 {
		msg = msg[:2000] + "..."
	}
	return fmt.Sprintf("sendgrid http %d: %s", e.StatusCode, msg)
}

func (e *HTTPError) HTTPStatusCode() int { return e.StatusCode }
