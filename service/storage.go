package service

import (
	"Scribe/config"
	minioclient "Scribe/pkg/minio"
	ossclient "Scribe/pkg/oss"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/minio/minio-go/v7"
)

// 签名地址有效期
const signExpires = time.Hour

// IStorage 对象存储，私信图片只经过这一层
type IStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	// URL 配置了公开域名时直接拼接，否则返回临时签名地址
	URL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// NewStorage 按 driver 选择实现
func NewStorage(conf *config.Storage) (IStorage, error) {
	switch conf.Driver {
	case config.StorageOss:
		return &OssStorage{
			Client:        ossclient.NewClient(conf),
			BucketName:    conf.Bucket,
			PublicBaseURL: conf.PublicBaseURL,
		}, nil
	case config.StorageMinio, "":
		client, err := minioclient.NewClient(context.Background(), conf)
		if err != nil {
			return nil, err
		}
		return &MinioStorage{
			Client:        client,
			BucketName:    conf.Bucket,
			PublicBaseURL: conf.PublicBaseURL,
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver: %s", conf.Driver)
}

var _ IStorage = (*OssStorage)(nil)

type OssStorage struct {
	Client        *oss.Client
	BucketName    string
	PublicBaseURL string
}

func (s *OssStorage) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := s.Client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket:        oss.Ptr(s.BucketName),
		Key:           oss.Ptr(key),
		ContentType:   oss.Ptr(contentType),
		ContentLength: oss.Ptr(size),
		Body:          body,
	})
	return err
}

func (s *OssStorage) URL(ctx context.Context, key string) (string, error) {
	if s.PublicBaseURL != "" {
		return joinURL(s.PublicBaseURL, key), nil
	}
	result, err := s.Client.Presign(ctx, &oss.GetObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(key),
	}, oss.PresignExpires(signExpires))
	if err != nil {
		return "", err
	}
	return result.URL, nil
}

func (s *OssStorage) Delete(ctx context.Context, key string) error {
	_, err := s.Client.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(key),
	})
	return err
}

var _ IStorage = (*MinioStorage)(nil)

type MinioStorage struct {
	Client        *minio.Client
	BucketName    string
	PublicBaseURL string
}

func (s *MinioStorage) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := s.Client.PutObject(ctx, s.BucketName, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (s *MinioStorage) URL(ctx context.Context, key string) (string, error) {
	if s.PublicBaseURL != "" {
		return joinURL(s.PublicBaseURL, key), nil
	}
	u, err := s.Client.PresignedGetObject(ctx, s.BucketName, key, signExpires, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (s *MinioStorage) Delete(ctx context.Context, key string) error {
	return s.Client.RemoveObject(ctx, s.BucketName, key, minio.RemoveObjectOptions{})
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
