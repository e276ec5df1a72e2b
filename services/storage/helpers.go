package storage

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/pkg/errors"

	"github.com/customeros/webmail/config"
	"github.com/customeros/webmail/interfaces"
	"github.com/customeros/webmail/services/storage/aws_client"
)

const (
	ProviderR2 = "r2"
	ProviderS3 = "s3"
)

// NewSentArchive builds the sent message archive. It returns nil when the archive is disabled.
func NewSentArchive(cfg *config.ArchiveConfig) (interfaces.StorageService, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}
	switch cfg.Provider {
	case ProviderR2:
		return NewR2StorageService(cfg.R2AccountID, cfg.AccessKeyID, cfg.AccessKeySecret, cfg.Bucket)
	case ProviderS3:
		return NewS3StorageService(cfg.AWSRegion, cfg.AccessKeyID, cfg.AccessKeySecret, cfg.Bucket)
	default:
		return nil, errors.Errorf("unknown storage provider %q", cfg.Provider)
	}
}

// NewS3StorageService creates a StorageService configured for AWS S3
func NewS3StorageService(awsRegion, accessKeyID, accessKeySecret, bucketName string) (interfaces.StorageService, error) {
	s3Client, err := aws_client.NewS3Client(s3Config(awsRegion, accessKeyID, accessKeySecret))
	if err != nil {
		return nil, errors.Wrap(err, "create s3 client")
	}
	return NewStorageService(s3Client, StorageConfig{BucketName: bucketName}), nil
}

// NewR2StorageService creates a StorageService configured for Cloudflare R2
func NewR2StorageService(accountID, accessKeyID, accessKeySecret, bucketName string) (interfaces.StorageService, error) {
	r2Client, err := aws_client.NewS3Client(r2Config(accountID, accessKeyID, accessKeySecret))
	if err != nil {
		return nil, errors.Wrap(err, "create r2 client")
	}
	return NewStorageService(r2Client, StorageConfig{BucketName: bucketName}), nil
}

func s3Config(awsRegion, accessKeyID, accessKeySecret string) *aws.Config {
	return &aws.Config{
		Region:      aws.String(awsRegion),
		Credentials: credentials.NewStaticCredentials(accessKeyID, accessKeySecret, ""),
	}
}

// R2 only accepts path style addressing and the "auto" region.
func r2Config(accountID, accessKeyID, accessKeySecret string) *aws.Config {
	return &aws.Config{
		Endpoint:         aws.String("https://" + accountID + ".r2.cloudflarestorage.com"),
		Region:           aws.String("auto"),
		Credentials:      credentials.NewStaticCredentials(accessKeyID, accessKeySecret, ""),
		S3ForcePathStyle: aws.Bool(true),
	}
}
