// Package soap реализует отправку пакетных SOAP-запросов провайдеру электронной подписи.
// Пакет не является универсальным SOAP-клиентом: он обслуживает одну операцию с фиксированной схемой.
package soap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/InQaaaaGit/purge_env.git/internal/models"
	"go.uber.org/zap"
)

const (
	contentTypeXML = "text/xml; charset=utf-8"
	acceptXML      = "text/xml, application/xml, application/soap+xml"
	userAgent      = "purge_env/1.0"
)

// HTTPDoer определяет интерфейс HTTP-клиента для отправки запросов
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Response представляет ответ провайдера на один пакет
type Response struct {
	StatusCode int
	Status     string
	Body       string
	// Parsed содержит разобранное тело ответа; nil, если тело не является корректным XML
	Parsed *models.XMLNode
}

// Client отправляет XML-документы на SOAP-эндпоинт провайдера
type Client struct {
	httpClient HTTPDoer
	endpoint   string
	action     string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewClient создает новый экземпляр Client
func NewClient(endpoint, action string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		endpoint:   endpoint,
		action:     action,
		timeout:    timeout,
		logger:     logger,
	}
}

// SetHTTPClient заменяет HTTP-клиент (используется в тестах)
func (c *Client) SetHTTPClient(client HTTPDoer) {
	c.httpClient = client
}

// Submit отправляет один XML-документ и классифицирует результат.
// Таймаут действует на весь вызов, включая чтение тела ответа.
// Ошибка разбора XML не считается ошибкой: Parsed остается nil, ответ успешен.
func (c *Client) Submit(ctx context.Context, xmlBody string) (*Response, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.endpoint, strings.NewReader(xmlBody))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	req.Header.Set("Content-Type", contentTypeXML)
	req.Header.Set("SOAPAction", c.action)
	req.Header.Set("Accept", acceptXML)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || reqCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w after %s: %v", ErrTimeout, c.timeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("Error closing response body", zap.Error(err))
		}
	}()

	bodyBytes, readErr := io.ReadAll(resp.Body)
	body := string(bodyBytes)

	// Неуспешный статус: тело прикладываем в том объеме, в котором удалось прочитать
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &RemoteError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       body,
		}
	}

	if readErr != nil {
		if errors.Is(readErr, context.DeadlineExceeded) || reqCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w after %s: %v", ErrTimeout, c.timeout, readErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrResponseRead, readErr)
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       body,
	}

	parsed, parseErr := ParseResponse(body)
	if parseErr != nil {
		c.logger.Warn("Response body is not valid XML",
			zap.Int("status", resp.StatusCode),
			zap.Error(parseErr))
	} else {
		result.Parsed = parsed
	}

	return result, nil
}
