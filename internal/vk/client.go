package vk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/vkfeed/vkfeed/pkg/config"
	"github.com/vkfeed/vkfeed/pkg/logging"
	"github.com/vkfeed/vkfeed/pkg/telemetry"
)

// User-facing translations for known upstream error messages. Any other
// message is passed through with a trailing period ensured.
var errorTranslations = map[string]string{
	"Access denied: group is blocked": "Страница временно заблокирована и проверяется администраторами, " +
		"так как некоторые пользователи считают, что она не соответствует правилам сайта.",
	"Access denied: this wall available only for community members": "Это частное сообщество. Доступ только по приглашениям администраторов.",
	"User was deleted or banned":                                    "Пользователь удален или забанен.",
}

const genericAPIError = "Ошибка вызова API."

// Client wraps the VK JSON API.
type Client struct {
	apiURL     string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a new VK API client
func New(cfg *config.VKConfig) (*Client, error) {
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("api_url is required")
	}

	logger := logging.GetLogger().With(zap.String("component", "vk-client"))

	client := &Client{
		apiURL:     cfg.APIURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}

	logger.Info("VK client initialized", zap.String("url", cfg.APIURL))

	return client, nil
}

// Call invokes the specified API method and returns the raw response
// payload. Transport and parse failures come back as *ConnectionError,
// upstream-reported failures as *ServerError.
func (c *Client) Call(ctx context.Context, method string, params url.Values) (json.RawMessage, error) {
	ctx, span := telemetry.StartSpan(ctx, "vk.call")
	defer span.End()

	callURL := c.apiURL + "method/" + method + "?language=0&" + params.Encode()

	body, err := c.fetch(ctx, callURL)
	if err != nil {
		return nil, &ConnectionError{URL: callURL, Err: err}
	}

	var envelope struct {
		Response json.RawMessage `json:"response"`
		Error    *struct {
			Code    int    `json:"error_code"`
			Message string `json:"error_msg"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &ConnectionError{URL: callURL, Err: fmt.Errorf("failed to parse JSON data: %w", err)}
	}

	if envelope.Error != nil || envelope.Response == nil {
		code := 0
		message := ""
		if envelope.Error != nil {
			code = envelope.Error.Code
			message = strings.TrimSpace(envelope.Error.Message)
		}

		c.logger.Warn("API method failed",
			zap.String("method", method),
			zap.Int("code", code),
			zap.String("message", message))

		return nil, &ServerError{Code: code, Message: translateError(message)}
	}

	return envelope.Response, nil
}

func (c *Client) fetch(ctx context.Context, callURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, callURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

func translateError(message string) string {
	if message == "" {
		return genericAPIError
	}
	if translated, ok := errorTranslations[message]; ok {
		return translated
	}
	if !strings.HasSuffix(message, ".") {
		message += "."
	}
	return message
}
