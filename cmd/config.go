package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort       = "8080"
	defaultBackendUrl = "http://localhost:8000"
)

// Config is the effective configuration after merging flags, LINGOBRIDGE_*
// environment variables, the optional config file and defaults.
type Config struct {
	Port       string  `mapstructure:"port" yaml:"port"`
	BackendUrl string  `mapstructure:"backend_url" yaml:"backend_url"`
	LogLevel   string  `mapstructure:"log_level" yaml:"log_level"`
	LogFormat  string  `mapstructure:"log_format" yaml:"log_format"`
	RateLimit  float64 `mapstructure:"rate_limit" yaml:"rate_limit"`
	RateBurst  int     `mapstructure:"rate_burst" yaml:"rate_burst"`
	// BackendHeaders are "Key: Value" pairs sent with every backend request.
	BackendHeaders []string `mapstructure:"backend_headers" yaml:"backend_headers,omitempty"`
	// ExtraContext is sent as extra_context with every grammar check.
	ExtraContext map[string]string `mapstructure:"extra_context" yaml:"extra_context,omitempty"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("LINGOBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// GOPORT is still honoured for existing deployments
	_ = v.BindEnv("port", "LINGOBRIDGE_PORT", "GOPORT")
	_ = v.BindEnv("backend_headers")

	v.SetDefault("port", defaultPort)
	v.SetDefault("backend_url", defaultBackendUrl)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("rate_limit", 1.0)
	v.SetDefault("rate_burst", 5)

	return v
}

func loadConfig(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if strings.TrimSpace(cfg.BackendUrl) == "" {
		return Config{}, errors.New("backend_url must not be empty")
	}
	if _, err := url.ParseRequestURI(cfg.BackendUrl); err != nil {
		return Config{}, fmt.Errorf("parsing backend_url: %w", err)
	}

	for _, h := range cfg.BackendHeaders {
		if k, _, ok := strings.Cut(h, ":"); !ok || strings.TrimSpace(k) == "" {
			return Config{}, fmt.Errorf("backend_headers: %q is not a \"Key: Value\" pair", h)
		}
	}

	return cfg, nil
}

// extraContext merges overrides over the configured extra_context.
func (c Config) extraContext(overrides map[string]string) map[string]any {
	merged := map[string]any{}
	for k, v := range c.ExtraContext {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// redacted hides backend header values, which usually carry credentials.
func (c Config) redacted() Config {
	if len(c.BackendHeaders) == 0 {
		return c
	}
	headers := make([]string, len(c.BackendHeaders))
	for i, h := range c.BackendHeaders {
		k, _, _ := strings.Cut(h, ":")
		headers[i] = strings.TrimSpace(k) + ": <redacted>"
	}
	c.BackendHeaders = headers
	return c
}

func (c Config) grammarUrl() (string, error) {
	return url.JoinPath(c.BackendUrl, "api", "grammar", "check")
}

func (c Config) healthUrl() (string, error) {
	return url.JoinPath(c.BackendUrl, "health")
}

func newLogger(cfg Config, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("parsing log_level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}

	switch cfg.LogFormat {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log_format %q (want text or json)", cfg.LogFormat)
	}
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := yaml.Marshal(opts.cfg.redacted())
			if err != nil {
				return fmt.Errorf("marshaling config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
