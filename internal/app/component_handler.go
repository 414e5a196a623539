package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
)

type ComponentResponse struct {
	Error       error
	Message     string
	Code        int
	ContentType string
	Component   templ.Component
}

// ComponentHandler renders the component a handler returns. A handler that
// wrote its own response returns nil.
type ComponentHandler func(http.ResponseWriter, *http.Request) *ComponentResponse

func (ch ComponentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := ch(w, r)

	if resp == nil {
		return
	}

	if resp.Error != nil {
		slog.Error(fmt.Sprintf(`Error occured: %s`, resp.Error.Error()))
	}

	// htmx only swaps 2xx responses, so error components are sent as 200
	if isHtmx(r) && resp.Code >= 300 {
		resp.Code = http.StatusOK
	}

	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	if resp.Code != 0 {
		w.WriteHeader(resp.Code)
	}

	err := resp.Component.Render(r.Context(), w)

	if err != nil {
		slog.Error(fmt.Sprintf(`Error occured: %s`, err.Error()))
		http.Error(w, "templ: failed to render template", http.StatusInternalServerError)
	}
}

func isHtmx(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
