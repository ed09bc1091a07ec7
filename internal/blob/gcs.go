package blob

import (
	"context"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
)

// GCSUploader Google Cloud Storage 实现
type GCSUploader struct {
	client *storage.Client
	bucket string
}

// NewGCSUploader 创建 GCS 上传器，凭据走应用默认凭据
func NewGCSUploader(ctx context.Context, bucket string) (*GCSUploader, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSUploader{client: client, bucket: bucket}, nil
}

// Upload 上传文件到 bucket 下的 key 对象
func (u *GCSUploader) Upload(ctx context.Context, localPath, key string) (string, error) {
	in, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer in.Close()

	w := u.client.Bucket(u.bucket).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, in); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize %s: %w", key, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, key), nil
}

// Close 释放底层客户端
func (u *GCSUploader) Close() error {
	return u.client.Close()
}
