package upload

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/dto"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/response"
)

type UploadHandler struct {
	service *UploadService
	maxSize int64
}

func NewUploadHandler(service *UploadService, maxSize int64) *UploadHandler {
	return &UploadHandler{service: service, maxSize: maxSize}
}

// Upload 上传课件
// @Summary 上传文件
// @Description 请求体即文件内容，文件名通过 query 传入
// @Tags 管理
// @Accept octet-stream
// @Produce json
// @Param filename query string true "文件名"
// @Success 200 {object} dto.Response{data=UploadResponse}
// @Router /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	filename := c.Query("filename")
	if filename == "" {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("filename 不能为空"),
		))
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		msg := "读取文件失败"
		if errors.As(err, &tooLarge) {
			msg = "文件超过大小限制"
		}
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage(msg),
		))
		return
	}

	result, berr := h.service.Upload(c.Request.Context(), filename, data)
	if berr != nil {
		dto.ErrorResponse(c, berr)
		return
	}
	dto.SuccessResponse(c, result)
}
