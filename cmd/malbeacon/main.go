package main

import (
	"os"

	"github.com/malbeacon/malbeacon/internal/cli"
	"github.com/malbeacon/malbeacon/internal/pkg/apperrors"
	"github.com/malbeacon/malbeacon/internal/pkg/logger"
)

// version is stamped at release time via -ldflags "-X main.version=...".
var version = "1.0.0"

func main() {
	// 1. Parse flags and run the selected module
	err := cli.Run(version)
	if err == nil {
		return
	}

	// 2. Surface the failure once, on stderr, mapped to an exit code
	appErr := apperrors.Wrap(err)
	if appErr.Suggestion != "" {
		logger.LogError(appErr, "command failed", "code", appErr.Type, "suggestion", appErr.Suggestion)
	} else {
		logger.LogError(appErr, "command failed", "code", appErr.Type)
	}
	os.Exit(appErr.ExitCode)
}
