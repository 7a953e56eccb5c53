package upload

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/logging"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/response"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/storage"
)

const maxFilenameLength = 100

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type UploadService struct {
	blob   storage.Blob
	logger logging.Logger
	now    func() time.Time
}

func NewUploadService(blob storage.Blob, logger logging.Logger) *UploadService {
	return &UploadService{blob: blob, logger: logger, now: time.Now}
}

// Upload 保存文件并返回公开地址
func (s *UploadService) Upload(ctx context.Context, filename string, data []byte) (UploadResponse, *response.BusinessError) {
	if strings.TrimSpace(filename) == "" {
		return UploadResponse{}, response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("filename 不能为空"),
		)
	}
	if len(data) == 0 {
		return UploadResponse{}, response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("文件内容不能为空"),
		)
	}

	name := SanitizeFilename(filename)
	key := s.storageKey(name)
	contentType := detectContentType(name, data)

	obj, err := s.blob.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		s.logger.Error(ctx, "上传文件失败", "key", key, "error", err)
		return UploadResponse{}, response.NewBusinessError(
			response.WithErrorCode(response.UpstreamFailure),
			response.WithErrorMessage("文件上传失败"),
			response.WithError(err),
		)
	}

	s.logger.Info(ctx, "文件上传成功", "key", key, "size", len(data))
	return obj, nil
}

// storageKey uploads/年/月/日/<uuid>-<文件名>
func (s *UploadService) storageKey(name string) string {
	d := s.now()
	return fmt.Sprintf("uploads/%d/%d/%d/%s-%s", d.Year(), d.Month(), d.Day(), uuid.New(), name)
}

// SanitizeFilename 去掉目录部分，只保留安全字符
func SanitizeFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	name = unsafeChars.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-.")
	if len(name) > maxFilenameLength {
		ext := path.Ext(name)
		if len(ext) > 10 {
			ext = ""
		}
		name = name[:maxFilenameLength-len(ext)] + ext
	}
	if name == "" {
		return "file"
	}
	return name
}

func detectContentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(name))); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
