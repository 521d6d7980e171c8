// Package notifier отправляет SMS-уведомления о подтверждённых заказах.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client выполняет единственную попытку доставки уведомления. Повторов нет,
// доставка не гарантируется: сбой логируется и никогда не влияет на заказ.
type Client struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient создаёт клиент уведомлений. Пустой apiURL означает, что шлюз SMS
// не настроен: уведомление будет только записано в журнал.
func NewClient(apiURL, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		apiURL: strings.TrimRight(apiURL, "/"),
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger: logger,
	}
}

type smsRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
	APIKey  string `json:"apiKey"`
}

// Send выполняет одну попытку доставки сообщения на указанный номер.
// При настроенном шлюзе выполняется один POST; иначе составленный sms-URI
// записывается в журнал как локальная замена доставки.
func (c *Client) Send(ctx context.Context, to, message string) {
	if c == nil {
		return
	}

	if c.apiURL == "" {
		c.logger.Info("sms gateway not configured, composing locally",
			zap.String("uri", fmt.Sprintf("sms:+%s?body=%s", to, url.QueryEscape(message))))
		return
	}

	body, err := json.Marshal(smsRequest{
		To:      to,
		Message: message,
		APIKey:  c.apiKey,
	})
	if err != nil {
		c.logger.Warn("sms payload encode error", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		c.logger.Warn("sms request error", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("sms delivery error", zap.String("to", to), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		c.logger.Warn("sms gateway rejected message",
			zap.String("to", to), zap.Int("status", resp.StatusCode))
		return
	}

	c.logger.Info("sms notification sent", zap.String("to", to))
}
