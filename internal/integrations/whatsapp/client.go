package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const cloudAPIBaseURL = "https://graph.facebook.com/v17.0"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент WhatsApp Cloud API для административных уведомлений.
// Отправка best-effort: ошибки логируются вызывающей стороной и не влияют
// на переходы статусов
type Client struct {
	token      string
	phoneID    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента WhatsApp Cloud API
func NewClient(token, phoneID string, timeout time.Duration, log Logger) *Client {
	return &Client{
		token:   token,
		phoneID: phoneID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Configured returns true if server-side sending is enabled
func (c *Client) Configured() bool {
	return c.token != "" && c.phoneID != ""
}

type textPayload struct {
	PreviewURL bool   `json:"preview_url"`
	Body       string `json:"body"`
}

type messageRequest struct {
	MessagingProduct string      `json:"messaging_product"`
	RecipientType    string      `json:"recipient_type"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             textPayload `json:"text"`
}

// SendText отправляет текстовое сообщение на указанный номер.
// Cloud API ожидает номер без ведущего "+"
func (c *Client) SendText(ctx context.Context, phone, text string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	payload := messageRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               strings.TrimPrefix(phone, "+"),
		Type:             "text",
		Text:             textPayload{PreviewURL: false, Body: text},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal request: %v", ErrInternal, err)
	}

	reqURL := fmt.Sprintf("%s/%s/messages", cloudAPIBaseURL, c.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrInternal, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: execute request: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", ErrSendFailed, resp.StatusCode, string(respBody))
	}

	return nil
}
