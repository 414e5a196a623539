package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixbrock/lingobridge/internal/app"
	"github.com/felixbrock/lingobridge/internal/components"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the Quick Fix web form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			undo, err := maxprocs.Set(maxprocs.Logger(func(format string, a ...any) {
				slog.Debug(fmt.Sprintf(format, a...))
			}))
			defer undo()
			if err != nil {
				slog.Error(fmt.Sprintf("Error occured: %s", err.Error()))
			}

			a, err := newApp(opts.cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.Start(ctx)
		},
	}

	flags := cmd.Flags()
	flags.String("port", defaultPort, "port to listen on")
	flags.Float64("rate-limit", 1, "quick fix submissions per second allowed per client (0 disables)")
	flags.Int("rate-burst", 5, "submissions a client may burst above the rate limit")

	_ = opts.v.BindPFlag("port", flags.Lookup("port"))
	_ = opts.v.BindPFlag("rate_limit", flags.Lookup("rate-limit"))
	_ = opts.v.BindPFlag("rate_burst", flags.Lookup("rate-burst"))

	return cmd
}

func newApp(cfg Config) (app.App, error) {
	repo, err := newGrammarRepo(cfg)
	if err != nil {
		return app.App{}, err
	}

	componentBuilder := app.ComponentBuilder{
		Index:    components.Index,
		QuickFix: components.QuickFix,
		Error:    components.ErrorPage,
	}

	return app.App{
		GrammarRepo:      repo,
		ComponentBuilder: componentBuilder,
		Config: app.Config{
			Port:         cfg.Port,
			RateLimit:    cfg.RateLimit,
			RateBurst:    cfg.RateBurst,
			ExtraContext: cfg.extraContext(nil),
		},
	}, nil
}
