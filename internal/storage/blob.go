// Package storage 文件对象存储。
package storage

import (
	"context"
	"io"
)

// Object 已上传对象
type Object struct {
	URL         string `json:"url"`
	Pathname    string `json:"pathname"`
	ContentType string `json:"content_type"`
}

// Blob 对象存储，返回可公开访问的地址
type Blob interface {
	Put(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string) (Object, error)
}
