package controller

import (
	"mindcheck_backend/internal/model"
	"mindcheck_backend/internal/scoring"
	"mindcheck_backend/internal/service"
	"mindcheck_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	Service *service.ResultService
}

func NewResultController(svc *service.ResultService) *ResultController {
	return &ResultController{Service: svc}
}

const maxFormMemory = 1 << 20

// bindSubmission 接受 JSON 请求体或 question_<id> 表单字段
func bindSubmission(ctx *gin.Context) (scoring.Submission, error) {
	if strings.HasPrefix(ctx.ContentType(), "application/json") {
		var req service.SubmitRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		return req.Submission(), nil
	}

	if strings.HasPrefix(ctx.ContentType(), "multipart/form-data") {
		if err := ctx.Request.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, err
		}
	} else if err := ctx.Request.ParseForm(); err != nil {
		return nil, err
	}
	return scoring.ParseFormAnswers(ctx.Request.PostForm), nil
}

// @Summary 提交测验答案
// @Description 支持 JSON {"answers":{"1":"Often","2":7}} 或表单字段 question_<id>
// @Tags 测验
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Param body body service.SubmitRequest false "答案"
// @Success 201 {object} util.Response{data=service.SubmissionResponse}
// @Failure 404 {object} util.Response "测验不存在或未发布"
// @Router /api/quizzes/{id}/submit [post]
func (c *ResultController) Submit(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	sub, err := bindSubmission(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.Submit(ctx.Request.Context(), claims.UserID, ctx.Param("id"), sub)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, resp)
}

// @Summary 某测验的历史结果
// @Tags 结果
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response{data=[]model.QuizResult}
// @Router /api/quizzes/{id}/history [get]
func (c *ResultController) History(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	history, err := c.Service.ListHistory(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if history == nil {
		history = []model.QuizResult{}
	}

	util.Success(ctx, history)
}

// @Summary 某测验的进度统计
// @Tags 结果
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response{data=service.ProgressResponse}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id}/progress [get]
func (c *ResultController) Progress(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	resp, err := c.Service.GetProgress(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary 我的全部结果
// @Tags 结果
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/results [get]
func (c *ResultController) ListMine(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	page, limit := util.PageParams(ctx)
	results, total, err := c.Service.ListMine(ctx.Request.Context(), claims.UserID, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: results, Total: total, Page: page, Limit: limit})
}

// @Summary 结果详情
// @Description 仅本人或管理员可见
// @Tags 结果
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "结果ID"
// @Success 200 {object} util.Response{data=service.ResultDetail}
// @Failure 404 {object} util.Response
// @Router /api/results/{id} [get]
func (c *ResultController) GetResult(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	detail, err := c.Service.GetResult(ctx.Request.Context(), claims.UserID, claims.Role == model.RoleAdmin, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}
