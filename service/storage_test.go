package service

import (
	"Scribe/config"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewStorage_Oss(t *testing.T) {
	conf := &config.Storage{
		Driver:          config.StorageOss,
		Endpoint:        "oss-cn-hangzhou.aliyuncs.com",
		Region:          "cn-hangzhou",
		Bucket:          "message-images",
		AccessKeyID:     "ak",
		AccessKeySecret: "sk",
	}
	storage, err := NewStorage(conf)
	require.NoError(t, err)
	require.IsType(t, &OssStorage{}, storage)

	// 签名在本地完成，不访问网络
	url, err := storage.URL(context.Background(), "message-images/2026/01/02/1.png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "https://message-images.oss-cn-hangzhou.aliyuncs.com/"))
	require.Contains(t, url, "1.png")

	conf.PublicBaseURL = "https://cdn.example.com/"
	storage, err = NewStorage(conf)
	require.NoError(t, err)
	url, err = storage.URL(context.Background(), "/a/b.png")
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/a/b.png", url)
}

func TestNewStorage_UnknownDriver(t *testing.T) {
	_, err := NewStorage(&config.Storage{Driver: "ftp"})
	require.Error(t, err)
}
