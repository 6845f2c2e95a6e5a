package controller

import (
	"fmt"
	"mindcheck_backend/internal/service"
	"mindcheck_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	Service *service.ExportService
}

func NewExportController(svc *service.ExportService) *ExportController {
	return &ExportController{Service: svc}
}

// @Summary 导出测验结果 CSV
// @Tags 测验管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response{data=service.ExportResponse}
// @Failure 404 {object} util.Response "测验不存在或没有结果"
// @Router /api/admin/quizzes/{id}/export [post]
func (c *ExportController) ExportResults(ctx *gin.Context) {
	resp, err := c.Service.ExportQuizResults(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary 下载导出的 CSV 文件
// @Tags 测验管理
// @Produce text/csv
// @Security ApiKeyAuth
// @Param file path string true "导出文件名"
// @Success 200 {file} file
// @Failure 404 {object} util.Response "文件不存在"
// @Router /api/admin/exports/{file} [get]
func (c *ExportController) Download(ctx *gin.Context) {
	file := ctx.Param("file")
	body, err := c.Service.OpenExport(ctx.Request.Context(), file)
	if err != nil {
		respondError(ctx, err)
		return
	}
	defer body.Close()

	ctx.DataFromReader(http.StatusOK, -1, util.MimeCSV, body, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, file),
		"Cache-Control":       "no-store",
	})
}
