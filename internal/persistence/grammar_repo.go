package persistence

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/felixbrock/lingobridge/internal/domain"
)

// GrammarRepo talks to the grammar check endpoint of the analysis backend.
// A nil Client falls back to http.DefaultClient, so no timeout is imposed
// beyond the caller's context.
type GrammarRepo struct {
	BaseHeaders []string
	Url         string
	Client      *http.Client
}

func (r GrammarRepo) Check(ctx context.Context, grammarReq domain.GrammarRequest) (*domain.Feedback, error) {
	body, err := json.Marshal(grammarReq)

	if err != nil {
		return nil, err
	}

	headers := append([]string{"Content-Type:application/json"}, r.BaseHeaders...)

	feedback, err := request[domain.Feedback](ctx, httpClient(r.Client), reqConfig{
		Method:  http.MethodPost,
		Url:     r.Url,
		Headers: headers,
		Body:    body})

	if err != nil {
		return nil, err
	}

	return feedback, nil
}

func httpClient(c *http.Client) *http.Client {
	if c == nil {
		return http.DefaultClient
	}
	return c
}
