package di

import (
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/savaki/face-alert/internal/lifecycle"
	"github.com/savaki/face-alert/internal/services"
)

func ProvideBucketService(client *s3.Client, region string) *services.BucketService {
	return services.NewBucketService(client, region)
}

func ProvideParameterStore(client *ssm.Client) *services.ParameterStore {
	return services.NewParameterStore(client)
}

func ProvideIdentityService(client *sts.Client) *services.IdentityService {
	return services.NewIdentityService(client)
}

func ProvideFaceDetector(client *rekognition.Client) *services.FaceDetector {
	return services.NewFaceDetector(client)
}

func ProvideSMSService(client *sns.Client) *services.SMSService {
	return services.NewSMSService(client)
}

func ProvideLogRetentionService(client *cloudwatchlogs.Client) *services.LogRetentionService {
	return services.NewLogRetentionService(client)
}

func ProvideLifecycleManager(
	buckets *services.BucketService,
	params *services.ParameterStore,
	identity *services.IdentityService,
	retention *services.LogRetentionService,
) *lifecycle.Manager {
	return lifecycle.NewManager(buckets, params, identity, retention, lifecycle.ChaliceRunner{})
}
