package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/urfave/cli/v2"

	"github.com/savaki/face-alert/internal/detect"
	"github.com/savaki/face-alert/internal/di"
	"github.com/savaki/face-alert/internal/notify"
	"github.com/savaki/face-alert/internal/services"
)

// Config holds the environment bindings the deployed handler receives from
// the chalice config. Loaded once at startup; no ambient globals.
type Config struct {
	PhoneNumParam string
	S3Bucket      string
}

func configFromEnv() Config {
	return Config{
		PhoneNumParam: os.Getenv("PHONE_NUM_PARAM"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
	}
}

func main() {
	logger := di.ProvideLogger().With().Str("lambda", "upload-handler").Logger()
	cfg := configFromEnv()

	// Region comes from the Lambda runtime environment
	container, err := di.New("",
		di.WithProviders(
			func(store *services.ParameterStore, sms *services.SMSService) *notify.Dispatcher {
				return notify.NewDispatcher(store, sms, cfg.PhoneNumParam)
			},
			func(detector *services.FaceDetector, dispatcher *notify.Dispatcher) *detect.Handler {
				return detect.NewHandler(detector, dispatcher)
			},
		),
	)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create DI container")
		os.Exit(1)
	}

	handler := di.MustGet[*detect.Handler](container)

	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		// Wrap handler to inject logger into context
		wrappedHandler := func(ctx context.Context, event events.S3Event) ([]types.FaceDetail, error) {
			ctx = logger.WithContext(ctx)
			return handler.HandleS3Event(ctx, event)
		}
		lambda.Start(wrappedHandler)
		return
	}

	app := &cli.App{
		Name:  "upload-handler",
		Usage: "Simulate an S3 upload event to run face detection locally",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "bucket",
				Usage: "S3 bucket name (defaults to S3_BUCKET)",
				Value: cfg.S3Bucket,
			},
			&cli.StringFlag{
				Name:     "key",
				Usage:    "S3 object key of the uploaded image",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			event := events.S3Event{
				Records: []events.S3EventRecord{
					{
						S3: events.S3Entity{
							Bucket: events.S3Bucket{
								Name: c.String("bucket"),
							},
							Object: events.S3Object{
								Key: c.String("key"),
							},
						},
					},
				},
			}

			ctx := logger.WithContext(context.Background())
			_, err := handler.HandleS3Event(ctx, event)
			return err
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("Application error")
		os.Exit(1)
	}
}
