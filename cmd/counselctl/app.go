package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/InsulaLabs/counsel/api"
	"github.com/InsulaLabs/counsel/client"
	"github.com/InsulaLabs/counsel/config"
	"github.com/InsulaLabs/counsel/internal/logging"
	"github.com/InsulaLabs/counsel/ui/overlay"
	"github.com/InsulaLabs/counsel/ui/term"
	"github.com/InsulaLabs/counsel/ui/toast"
	"github.com/InsulaLabs/counsel/upload"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "counsel.yaml"

// offline marks commands that never talk to the backend.
var offline = map[string]string{"offline": "true"}

type globalFlags struct {
	configPath string
	baseURL    string
	logLevel   string
	plain      bool
	json       bool
}

// app holds everything a command needs. setup fills it before any command
// runs.
type app struct {
	flags globalFlags

	cfg      *config.Console
	logger   *slog.Logger
	overlays *overlay.Registry
	toaster  *toast.Toaster
	client   *client.Client
	uploader *upload.Uploader
	api      *api.API
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.flags.plain {
		color.NoColor = true
	}

	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Logging.Level
	if a.flags.logLevel != "" {
		level = a.flags.logLevel
	}
	a.logger = logging.New(logging.Options{Level: level, Format: cfg.Logging.Format})

	if cmd.Annotations["offline"] == "true" {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	interactive := !a.flags.plain && isatty.IsTerminal(os.Stderr.Fd())
	surface := term.New(os.Stderr, term.WithInteractive(interactive))
	a.overlays = overlay.New(surface, a.logger)
	a.toaster = toast.New(surface, toast.WithDuration(cfg.Upload.ToastDuration), toast.WithLogger(a.logger))

	a.client, err = client.NewClient(&client.Config{
		BaseURL:    cfg.BaseURL,
		Token:      client.EnvToken(cfg.TokenEnv),
		SkipVerify: cfg.SkipVerify,
		Timeout:    cfg.Timeout,
		Retries:    cfg.Retries,
		RateLimit:  client.RateLimit{Limit: cfg.RateLimit.Limit, Burst: cfg.RateLimit.Burst},
		UserAgent:  "counselctl/" + version,
		Logger:     a.logger,
	})
	if err != nil {
		return err
	}

	a.uploader = upload.New(a.client,
		upload.WithOverlay(a.overlays),
		upload.WithNotifier(a.toaster),
		upload.WithLogger(a.logger),
		upload.WithOverlayText(cfg.Upload.OverlayText),
		upload.WithSuccessMessage(cfg.Upload.SuccessMessage),
		upload.WithMaxAttachmentBytes(cfg.Upload.MaxAttachmentBytes),
	)
	a.api = api.New(a.client, a.uploader, a.logger)
	return nil
}

// loadConfig reads --config, or ./counsel.yaml when it exists, and falls back
// to defaults plus environment. --base-url is applied through the environment
// so it wins over both.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Console, error) {
	if a.flags.baseURL != "" {
		os.Setenv(config.BaseURLEnv, a.flags.baseURL)
	}

	path := a.flags.configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path == "" || cmd.Annotations["offline"] == "true" {
		cfg := config.Default()
		cfg.ApplyEnv()
		return cfg, nil
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

func (a *app) close() {
	if a.toaster != nil {
		a.toaster.Close()
	}
}
