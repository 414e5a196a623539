package persistence

import (
	"context"
	"fmt"
	"net/http"

	"github.com/felixbrock/lingobridge/internal/domain"
)

type HealthRepo struct {
	BaseHeaders []string
	Url         string
	Client      *http.Client
}

func (r HealthRepo) Check(ctx context.Context) error {
	health, err := request[domain.Health](ctx, httpClient(r.Client), reqConfig{
		Method:  http.MethodGet,
		Url:     r.Url,
		Headers: r.BaseHeaders})

	if err != nil {
		return err
	}

	if health.Status != "ok" {
		return fmt.Errorf("backend reported status %q", health.Status)
	}

	return nil
}
