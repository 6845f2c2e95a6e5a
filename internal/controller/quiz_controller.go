package controller

import (
	"mindcheck_backend/internal/repository"
	"mindcheck_backend/internal/service"
	"mindcheck_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

type PublishRequest struct {
	Published bool `json:"published"`
}

// @Summary 创建测验
// @Description 保存前进行校验；重叠的分数区间等问题作为 warnings 返回
// @Tags 测验管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizRequest true "测验定义"
// @Success 201 {object} util.Response{data=service.QuizSaveResponse}
// @Failure 400 {object} util.Response{data=service.ValidationReport}
// @Router /api/admin/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.CreateQuiz(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, resp)
}

// @Summary 校验测验草稿
// @Tags 测验管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizRequest true "测验定义"
// @Success 200 {object} util.Response{data=service.ValidationReport}
// @Router /api/admin/quizzes/validate [post]
func (c *QuizController) ValidateQuiz(ctx *gin.Context) {
	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, c.Service.ValidateDraft(req))
}

// @Summary 更新测验
// @Tags 测验管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Param body body service.QuizRequest true "测验定义"
// @Success 200 {object} util.Response{data=service.QuizSaveResponse}
// @Failure 400 {object} util.Response{data=service.ValidationReport}
// @Failure 404 {object} util.Response
// @Router /api/admin/quizzes/{id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.UpdateQuiz(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary 删除测验
// @Tags 测验管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	if err := c.Service.DeleteQuiz(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 发布或下线测验
// @Tags 测验管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Param body body PublishRequest true "发布状态"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response{data=service.ValidationReport}
// @Router /api/admin/quizzes/{id}/publish [post]
func (c *QuizController) SetPublished(ctx *gin.Context) {
	var req PublishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Service.SetPublished(ctx.Request.Context(), ctx.Param("id"), req.Published)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

// @Summary 获取测验详情（管理端，含未发布）
// @Tags 测验管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Router /api/admin/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quiz, err := c.Service.GetQuiz(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// @Summary 测验列表（管理端）
// @Tags 测验管理
// @Produce json
// @Security ApiKeyAuth
// @Param category query string false "分类"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	c.list(ctx, false)
}

// @Summary 已发布测验列表
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param category query string false "分类"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/quizzes [get]
func (c *QuizController) ListPublished(ctx *gin.Context) {
	c.list(ctx, true)
}

func (c *QuizController) list(ctx *gin.Context, publishedOnly bool) {
	page, limit := util.PageParams(ctx)
	filter := repository.QuizFilter{
		PublishedOnly: publishedOnly,
		Category:      strings.TrimSpace(ctx.Query("category")),
	}

	quizzes, total, err := c.Service.ListQuizzes(ctx.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: quizzes, Total: total, Page: page, Limit: limit})
}

// @Summary 获取已发布测验
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetPublished(ctx *gin.Context) {
	quiz, err := c.Service.GetPublishedQuiz(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}
