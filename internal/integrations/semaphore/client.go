package semaphore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client клиент SMS шлюза Semaphore
type Client struct {
	baseURL    string
	apiKey     string
	senderName string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Semaphore
func NewClient(baseURL, apiKey, senderName string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		senderName: senderName,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendSMS отправляет SMS на номер
func (c *Client) SendSMS(ctx context.Context, number, message string) (*Response, error) {
	if strings.TrimSpace(number) == "" {
		return nil, ErrEmptyRecipient
	}

	form := url.Values{}
	form.Set("apikey", c.apiKey)
	form.Set("number", number)
	form.Set("message", message)
	if c.senderName != "" {
		form.Set("sendername", c.senderName)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrInvalidResponse, err)
	}

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, string(body))
	default:
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var messages []Message
	if err := json.Unmarshal(body, &messages); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("SMS accepted by gateway: recipient=%s, messages=%d", number, len(messages))

	return &Response{Messages: messages}, nil
}
