package storage

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/customeros/webmail/interfaces"
	"github.com/customeros/webmail/internal/tracing"
	"github.com/customeros/webmail/services/storage/aws_client"
)

// ObjectStorageService implements StorageService on top of an S3 compatible bucket
type ObjectStorageService struct {
	client     aws_client.S3Client
	bucketName string
}

type StorageConfig struct {
	BucketName string
}

func NewStorageService(client aws_client.S3Client, config StorageConfig) interfaces.StorageService {
	return &ObjectStorageService{
		client:     client,
		bucketName: config.BucketName,
	}
}

func (s *ObjectStorageService) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ObjectStorageService.Upload")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogFields(log.String("key", key), log.Int("size", len(data)))

	uploadInput := s3manager.UploadInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}

	if err := s.client.Upload(ctx, uploadInput); err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrapf(err, "upload %s", key)
	}
	return nil
}

func (s *ObjectStorageService) Delete(ctx context.Context, key string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ObjectStorageService.Delete")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogFields(log.String("key", key))

	if err := s.client.Delete(ctx, s.bucketName, key); err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrapf(err, "delete %s", key)
	}
	return nil
}
