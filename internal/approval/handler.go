package approval

import (
	"github.com/gin-gonic/gin"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/dto"
)

type ApprovalHandler struct {
	service *ApprovalService
}

func NewApprovalHandler(service *ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{service: service}
}

// List 待审核用户列表
// @Summary 待审核用户
// @Tags 管理
// @Produce json
// @Success 200 {object} dto.Response{data=[]PendingUser}
// @Router /admin/approvals [get]
func (h *ApprovalHandler) List(c *gin.Context) {
	users, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, users)
}

// Decide 审核用户
// @Summary 审核用户
// @Description approve 缺省为 true，false 表示撤销审核
// @Tags 管理
// @Accept json
// @Produce json
// @Param request body ApproveRequest true "审核信息"
// @Success 200 {object} dto.Response
// @Router /admin/approvals [post]
func (h *ApprovalHandler) Decide(c *gin.Context) {
	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, dto.BindError(err))
		return
	}

	u, err := h.service.Decide(c.Request.Context(), req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, u)
}
