// Package lifecycle provisions and tears down the cloud resources backing
// the upload handler: the image bucket, the phone number parameter, and the
// chalice deployment itself. Steps run in a fixed order with no rollback;
// the first unrecovered error aborts the remaining steps.
package lifecycle

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
)

// handlerLogRetentionDays trims the handler's log group on teardown so a
// deleted demo does not keep logs around.
const handlerLogRetentionDays = 1

// Options carries the CLI inputs for one lifecycle action.
type Options struct {
	Bucket         string
	ParameterName  string
	ParameterValue string
	AppDir         string
	Region         string
}

// Buckets manages the image upload bucket.
type Buckets interface {
	Create(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) error
}

// Parameters manages the phone number parameter.
type Parameters interface {
	Save(ctx context.Context, name, value, currentUser string) error
	Delete(ctx context.Context, name, currentUser string) error
}

// Identity resolves the current caller for ownership tagging.
type Identity interface {
	CurrentUser(ctx context.Context) string
}

// LogRetention adjusts retention on the handler's log group.
type LogRetention interface {
	SetRetention(ctx context.Context, group string, days int32) error
}

// Manager runs the deploy and delete sequences.
type Manager struct {
	buckets   Buckets
	params    Parameters
	identity  Identity
	retention LogRetention
	runner    Runner
}

func NewManager(buckets Buckets, params Parameters, identity Identity, retention LogRetention, runner Runner) *Manager {
	return &Manager{
		buckets:   buckets,
		params:    params,
		identity:  identity,
		retention: retention,
		runner:    runner,
	}
}

// Deploy creates the bucket and parameter, points the chalice config at
// them, and deploys the app.
func (m *Manager) Deploy(ctx context.Context, opts Options) error {
	logger := zerolog.Ctx(ctx)
	logger.Info().Msg("Deploying chalice app")

	if err := m.buckets.Create(ctx, opts.Bucket); err != nil {
		return err
	}

	currentUser := m.identity.CurrentUser(ctx)
	if err := m.params.Save(ctx, opts.ParameterName, opts.ParameterValue, currentUser); err != nil {
		return err
	}

	if err := UpdateChaliceConfig(opts.AppDir, opts.ParameterName, opts.Bucket); err != nil {
		return err
	}

	if err := m.runner.Run(ctx, opts.AppDir, "deploy"); err != nil {
		return err
	}

	logger.Info().Msg("Complete")
	return nil
}

// Delete tears the app down, blanks the chalice config, trims log
// retention, and removes the parameter and bucket.
func (m *Manager) Delete(ctx context.Context, opts Options) error {
	logger := zerolog.Ctx(ctx)
	logger.Info().Msg("Deleting chalice app")

	if err := m.runner.Run(ctx, opts.AppDir, "delete"); err != nil {
		return err
	}

	if err := UpdateChaliceConfig(opts.AppDir, "", ""); err != nil {
		return err
	}

	if err := m.retention.SetRetention(ctx, handlerLogGroup(opts.AppDir), handlerLogRetentionDays); err != nil {
		return err
	}

	currentUser := m.identity.CurrentUser(ctx)
	if err := m.params.Delete(ctx, opts.ParameterName, currentUser); err != nil {
		return err
	}

	if err := m.buckets.Delete(ctx, opts.Bucket); err != nil {
		return err
	}

	logger.Info().Msg("Complete")
	return nil
}

// handlerLogGroup names the log group chalice creates for the upload
// handler in the dev stage.
func handlerLogGroup(appDir string) string {
	return fmt.Sprintf("/aws/lambda/%s-dev-image_upload_handler", filepath.Base(appDir))
}
