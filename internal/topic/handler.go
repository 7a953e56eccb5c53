package topic

import (
	"github.com/gin-gonic/gin"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/dto"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/middleware"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/response"
)

type TopicHandler struct {
	service *TopicService
}

func NewTopicHandler(service *TopicService) *TopicHandler {
	return &TopicHandler{service: service}
}

func unauthorized(c *gin.Context) {
	dto.ErrorResponse(c, response.NewBusinessError(
		response.WithErrorCode(response.Unauthorized),
		response.WithErrorMessage("未登录"),
	))
}

// List 课程目录
// @Summary 课程目录
// @Description 返回全部章节与课时摘要，无权查看的高级课时 locked 为 true
// @Tags 课程
// @Produce json
// @Success 200 {object} dto.Response{data=[]SectionView}
// @Router /topics [get]
func (h *TopicHandler) List(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		unauthorized(c)
		return
	}
	sections, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, sections)
}

// GetSubTopic 课时详情
// @Summary 课时详情
// @Tags 课程
// @Produce json
// @Param id path string true "课时 ID"
// @Success 200 {object} dto.Response
// @Router /subtopics/{id} [get]
func (h *TopicHandler) GetSubTopic(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		unauthorized(c)
		return
	}
	st, err := h.service.GetSubTopic(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, st)
}

// CreateSection 新建章节
// @Summary 新建章节
// @Tags 管理
// @Accept json
// @Produce json
// @Param request body CreateSectionRequest true "章节"
// @Success 200 {object} dto.Response
// @Router /topics [post]
func (h *TopicHandler) CreateSection(c *gin.Context) {
	var req CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, dto.BindError(err))
		return
	}
	section, err := h.service.CreateSection(c.Request.Context(), req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, section)
}

// DeleteSection 删除章节及其课时
// @Summary 删除章节
// @Tags 管理
// @Produce json
// @Param id path string true "章节 ID"
// @Success 200 {object} dto.Response
// @Router /topics/{id} [delete]
func (h *TopicHandler) DeleteSection(c *gin.Context) {
	if err := h.service.DeleteSection(c.Request.Context(), c.Param("id")); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, nil)
}

// CreateSubTopic 新建课时
// @Summary 新建课时
// @Tags 管理
// @Accept json
// @Produce json
// @Param request body CreateSubTopicRequest true "课时"
// @Success 200 {object} dto.Response
// @Router /subtopics [post]
func (h *TopicHandler) CreateSubTopic(c *gin.Context) {
	var req CreateSubTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, dto.BindError(err))
		return
	}
	st, err := h.service.CreateSubTopic(c.Request.Context(), req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, st)
}

// DeleteSubTopic 删除课时
// @Summary 删除课时
// @Tags 管理
// @Produce json
// @Param id path string true "课时 ID"
// @Success 200 {object} dto.Response
// @Router /subtopics/{id} [delete]
func (h *TopicHandler) DeleteSubTopic(c *gin.Context) {
	if err := h.service.DeleteSubTopic(c.Request.Context(), c.Param("id")); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, nil)
}
