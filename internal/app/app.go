package app

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
)

//go:embed static
var static embed.FS

type Config struct {
	Port      string
	RateLimit float64
	RateBurst int
	// ExtraContext is sent as extra_context with every submission.
	ExtraContext map[string]any
}

// QuickFixView is everything the Quick Fix page renders: the sentence as
// typed and the state of its submission.
type QuickFixView struct {
	Sentence string
	State    SubmissionState
}

type ComponentBuilder struct {
	Index    func(view QuickFixView) templ.Component
	QuickFix func(view QuickFixView) templ.Component
	Error    func(code int, title string, msg string) templ.Component
}

type App struct {
	GrammarRepo      GrammarRepo
	ComponentBuilder ComponentBuilder
	Config           Config
}

func (a App) Handler() http.Handler {
	sessions := newSessions(a.GrammarRepo, sessionTTL, WithExtraContext(a.Config.ExtraContext))
	limiter := newClientLimiter(a.Config.RateLimit, a.Config.RateBurst)

	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.FileServer(http.FS(static)))
	mux.Handle("GET /{$}", ComponentHandler(a.index(sessions)))
	mux.Handle("POST /quickfix", limiter.middleware(
		ComponentHandler(a.quickFix(sessions)),
		ComponentHandler(a.errorPage(get429()))))
	mux.HandleFunc("GET /healthz", healthz)

	return mux
}

// Start serves until ctx is cancelled, then drains open requests.
func (a App) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", a.Config.Port),
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info(fmt.Sprintf("App running on %s...", a.Config.Port))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
