package api_router

import (
	"github.com/haierkeys/fast-note-service/internal/app"
	pkgapp "github.com/haierkeys/fast-note-service/pkg/app"
	"github.com/haierkeys/fast-note-service/pkg/code"
	"github.com/haierkeys/fast-note-service/pkg/convert"
	apperrors "github.com/haierkeys/fast-note-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// NoteHistoryHandler 笔记历史 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type NoteHistoryHandler struct {
	*Handler
}

// NewNoteHistoryHandler 创建 NoteHistoryHandler 实例
func NewNoteHistoryHandler(a *app.App) *NoteHistoryHandler {
	return &NoteHistoryHandler{
		Handler: NewHandler(a),
	}
}

// List 获取笔记历史列表
// @Summary 获取笔记历史列表
// @Description 按保存时间升序返回历史版本，最后一项为当前版本 {id:"current", isLatest:true}
// @Tags 笔记历史
// @Produce json
// @Param id path int true "笔记 ID"
// @Success 200 {object} map[string]any "{success, history:[dto.NoteVersionDTO]}"
// @Failure 404 {object} pkgapp.ErrorRes "笔记不存在"
// @Router /api/notes/{id}/history [get]
func (h *NoteHistoryHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	noteID, ok := paramID(c, "id")
	if !ok {
		response.ToResponse(code.ErrorNoteIDInvalid)
		return
	}

	ctx := c.Request.Context()

	list, err := h.App.NoteHistoryService.List(ctx, pkgapp.GetUID(c), noteID)
	if err != nil {
		h.logError(ctx, "NoteHistoryHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(gin.H{"history": list}))
}

// Get 获取单个历史版本
// @Summary 获取历史版本详情
// @Description "current" 不是历史版本，请使用笔记接口
// @Tags 笔记历史
// @Produce json
// @Param versionId path int true "历史版本 ID"
// @Success 200 {object} map[string]any "{success, id, title, content, savedAt}"
// @Failure 400 {object} pkgapp.ErrorRes "版本 ID 无效"
// @Failure 403 {object} pkgapp.ErrorRes "无权访问"
// @Failure 404 {object} pkgapp.ErrorRes "历史版本不存在"
// @Router /api/notes/history/{versionId} [get]
func (h *NoteHistoryHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	history, err := h.App.NoteHistoryService.Get(ctx, pkgapp.GetUID(c), c.Param("versionId"))
	if err != nil {
		h.logError(ctx, "NoteHistoryHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	h.flat(c, "NoteHistoryHandler.Get", history)
}

// Diff 历史版本与当前笔记的差异
// @Summary 历史版本差异
// @Description 返回从历史版本到当前笔记内容的 diff-match-patch 补丁与差异片段
// @Tags 笔记历史
// @Produce json
// @Param versionId path int true "历史版本 ID"
// @Success 200 {object} map[string]any "{success, id, noteId, patch, diffs:[{type,text}]}"
// @Failure 400 {object} pkgapp.ErrorRes "版本 ID 无效"
// @Failure 403 {object} pkgapp.ErrorRes "无权访问"
// @Failure 404 {object} pkgapp.ErrorRes "历史版本不存在"
// @Router /api/notes/history/{versionId}/diff [get]
func (h *NoteHistoryHandler) Diff(c *gin.Context) {
	ctx := c.Request.Context()

	d, err := h.App.NoteHistoryService.Diff(ctx, pkgapp.GetUID(c), c.Param("versionId"))
	if err != nil {
		h.logError(ctx, "NoteHistoryHandler.Diff", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	h.flat(c, "NoteHistoryHandler.Diff", d)
}

// flat renders v's json fields next to "success"
func (h *NoteHistoryHandler) flat(c *gin.Context, method string, v any) {
	data, err := convert.StructToMap(v)
	if err != nil {
		h.logError(c.Request.Context(), method, err)
		apperrors.ErrorResponse(c, code.ErrorServerInternal)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(data))
}
