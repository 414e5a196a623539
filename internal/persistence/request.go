package persistence

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/felixbrock/lingobridge/internal/app"
	"github.com/felixbrock/lingobridge/internal/domain"
)

type reqConfig struct {
	Method  string
	Url     string
	Headers []string
	Body    []byte
}

// request sends config and decodes a 2xx body into T. Any other status is
// reported as *domain.APIError, carrying the backend's detail when the body
// has one.
func request[T any](ctx context.Context, client *http.Client, config reqConfig) (*T, error) {
	req, err := http.NewRequestWithContext(ctx, config.Method, config.Url, bytes.NewBuffer(config.Body))

	if err != nil {
		return nil, err
	}

	for i := 0; i < len(config.Headers); i++ {
		headerKV := strings.SplitN(config.Headers[i], ":", 2)
		if len(headerKV) != 2 {
			continue
		}
		req.Header.Add(strings.TrimSpace(headerKV[0]), strings.TrimSpace(headerKV[1]))
	}

	resp, err := client.Do(req)

	if err != nil {
		return nil, err
	}

	body, readErr := app.Read(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp.StatusCode, body)
	} else if readErr != nil {
		return nil, readErr
	}

	return app.ReadJSON[T](body)
}

func apiError(statusCode int, body []byte) *domain.APIError {
	apiErr := &domain.APIError{StatusCode: statusCode}

	errBody, err := app.ReadJSON[struct {
		Detail *domain.ErrorDetail `json:"detail"`
	}](body)

	if err == nil {
		apiErr.Detail = errBody.Detail
	}

	return apiErr
}
