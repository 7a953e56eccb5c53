package content

import (
	"github.com/gin-gonic/gin"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/dto"
)

type ContentHandler struct {
	service *ContentService
}

func NewContentHandler(service *ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// Update 编辑课时正文
// @Summary 编辑课时正文
// @Tags 管理
// @Accept json
// @Produce json
// @Param request body UpdateContentRequest true "正文"
// @Success 200 {object} dto.Response
// @Router /content [put]
func (h *ContentHandler) Update(c *gin.Context) {
	var req UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, dto.BindError(err))
		return
	}
	if err := h.service.Update(c.Request.Context(), req); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, nil)
}
