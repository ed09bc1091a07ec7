// Package blob 提供导入阶段的对象存储上传能力
// 关系行写入前，图片与原始表格必须先完成上传
package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Uploader 对象存储上传接口
// key 为带扩展名的存储键，返回可访问的定位 URL
type Uploader interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
}

// LocalUploader 本地目录实现，离线运行时的默认选择
type LocalUploader struct {
	dir string
}

// NewLocalUploader 创建本地上传器，目标目录不存在时创建
func NewLocalUploader(dir string) (*LocalUploader, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &LocalUploader{dir: dir}, nil
}

// Upload 将文件复制到 blob 目录下的 key 位置
func (u *LocalUploader) Upload(_ context.Context, localPath, key string) (string, error) {
	in, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer in.Close()

	dst := filepath.Join(u.dir, key)
	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", fmt.Errorf("copy blob: %w", err)
	}
	return dst, nil
}
