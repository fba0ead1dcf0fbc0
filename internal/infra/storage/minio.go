package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Archive mirrors accepted batch files into a MinIO bucket. It keeps
// the one-file-per-batch shape; there is no index and no readback path.
type Archive struct {
	client     *minio.Client
	bucketName string
	prefix     string
}

// New connects to MinIO and ensures the bucket exists.
func New(ctx context.Context, endpoint, region, bucket, prefix, accessKey, secretKey string, useSSL bool) (*Archive, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, err
		}
	}

	return &Archive{client: cli, bucketName: bucket, prefix: prefix}, nil
}

// Archive implements batch.Archiver.
func (a *Archive) Archive(ctx context.Context, name string, data []byte) (string, error) {
	key := name
	if a.prefix != "" {
		key = a.prefix + "/" + name
	}

	_, err := a.client.PutObject(ctx, a.bucketName, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", err
	}

	// Public URL if the bucket is public; private buckets would need a
	// presigned URL instead.
	url := fmt.Sprintf("http://%s/%s/%s", a.client.EndpointURL().Host, a.bucketName, key)
	return url, nil
}
