package lifecycle

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/rs/zerolog"
)

// Runner executes one action of the deployment tool.
type Runner interface {
	Run(ctx context.Context, appDir, action string) error
}

// ChaliceRunner shells out to the chalice CLI in the app directory.
type ChaliceRunner struct{}

func (ChaliceRunner) Run(ctx context.Context, appDir, action string) error {
	logger := zerolog.Ctx(ctx)

	cmd := exec.CommandContext(ctx, "chalice", action)
	cmd.Dir = appDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		logger.Error().
			Str("action", action).
			Str("stdout", stdout.String()).
			Str("stderr", stderr.String()).
			Msg("Chalice command failed")
		return fmt.Errorf("chalice %s: %w", action, err)
	}

	logger.Info().Str("action", action).Msg(stdout.String())
	return nil
}
