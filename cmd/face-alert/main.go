package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/savaki/face-alert/internal/di"
	apperrors "github.com/savaki/face-alert/internal/errors"
	"github.com/savaki/face-alert/internal/lifecycle"
	"github.com/savaki/face-alert/internal/logging"
)

func main() {
	logger := logging.FromFile(logging.DefaultConfigPath)
	ctx := logger.WithContext(context.Background())

	app := &cli.App{
		Name:  "face-alert",
		Usage: "Manage lifecycle for the face detection notifier",
		Description: `Provisions and tears down the resources backing the upload handler:
the image upload bucket, the phone number parameter, and the chalice
deployment itself.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "action",
				Usage:    "deploy or delete",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "s3-bucket",
				Usage:    "Name of S3 bucket for image uploads",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "phone-number-parameter-name",
				Usage:    "Full path of SSM parameter for phone number. Remember to make this as unique as possible (name spacing) to avoid global conflicts",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "phone-number-parameter-value",
				Usage: "Value of SSM parameter for phone number (Format \"+XXXXXXXXXX\")",
			},
			&cli.StringFlag{
				Name:  "chalice-app-dir",
				Usage: "Directory of chalice app to deploy",
				Value: "lt-chalice",
			},
			&cli.StringFlag{
				Name:  "region",
				Usage: "Region in which to deploy resources",
				Value: "us-west-2",
			},
		},
		Action: run,
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.Error().Err(err).Msg("Application error")
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	opts := lifecycle.Options{
		Bucket:         c.String("s3-bucket"),
		ParameterName:  c.String("phone-number-parameter-name"),
		ParameterValue: c.String("phone-number-parameter-value"),
		AppDir:         c.String("chalice-app-dir"),
		Region:         c.String("region"),
	}

	container, err := di.New(opts.Region)
	if err != nil {
		return err
	}
	manager := di.MustGet[*lifecycle.Manager](container)

	switch action := c.String("action"); action {
	case "deploy":
		if opts.ParameterValue == "" {
			return apperrors.ErrParameterValueNeeded
		}
		return manager.Deploy(c.Context, opts)
	case "delete":
		return manager.Delete(c.Context, opts)
	default:
		return fmt.Errorf("%w: %s", apperrors.ErrUnknownAction, action)
	}
}
