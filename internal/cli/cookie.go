package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/malbeacon/malbeacon/internal/client"
	"github.com/malbeacon/malbeacon/internal/config"
	"github.com/malbeacon/malbeacon/internal/pkg/apperrors"
	"github.com/malbeacon/malbeacon/internal/pkg/logger"
	"github.com/malbeacon/malbeacon/internal/render"
	"github.com/malbeacon/malbeacon/internal/report"
)

// Execute implements the go-flags Commander interface for CookieCommand.
func (c *CookieCommand) Execute(args []string) error {
	cfg, err := bootstrap(c.globals, c.version)
	if err != nil {
		return err
	}
	return c.executeWithClient(client.New(cfg), os.Stdout)
}

// executeWithClient runs the lookup against a provided client (for testing).
func (c *CookieCommand) executeWithClient(cl *client.Client, w io.Writer) error {
	ctx := context.Background()

	beacons, err := cl.CookieBeacons(ctx, c.Args.CookieID)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return render.Raw(w, beacons)
	}

	rep := report.Build(beacons)
	render.Human(w, beacons, rep)
	return nil
}

// bootstrap merges flag overrides onto the environment configuration and
// brings the logger up. The API key check happens here, before any
// network traffic.
func bootstrap(globals *GlobalFlags, version string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, apperrors.New(apperrors.ErrUsage, "load configuration", err)
	}

	if globals != nil {
		if globals.APIKey != "" {
			cfg.APIKey = globals.APIKey
		}
		if globals.BaseURL != "" {
			cfg.BaseURL = globals.BaseURL
		}
		if globals.UserAgent != "" {
			cfg.UserAgent = globals.UserAgent
		}
		if globals.Timeout != "" {
			d, err := time.ParseDuration(globals.Timeout)
			if err != nil {
				return nil, apperrors.NewUsage(fmt.Sprintf("invalid --timeout %q", globals.Timeout))
			}
			cfg.Timeout = d
		}
		if globals.Debug {
			cfg.LogLevel = "debug"
		}
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent(version)
	}

	logger.Init(cfg.LogLevel)

	if cfg.APIKey == "" {
		return nil, apperrors.NewUsage("an API key is required: set MALBEACON_API_KEY or pass --api-key")
	}

	return cfg, nil
}

func defaultUserAgent(version string) string {
	return fmt.Sprintf("malbeacon/%s (%s; %s %s)", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
