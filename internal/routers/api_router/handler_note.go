package api_router

import (
	"github.com/haierkeys/fast-note-service/internal/app"
	"github.com/haierkeys/fast-note-service/internal/dto"
	pkgapp "github.com/haierkeys/fast-note-service/pkg/app"
	"github.com/haierkeys/fast-note-service/pkg/code"
	apperrors "github.com/haierkeys/fast-note-service/pkg/errors"
	"github.com/haierkeys/fast-note-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NoteHandler 笔记 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{
		Handler: NewHandler(a),
	}
}

// Create 使用默认模板创建笔记
// @Summary 创建笔记
// @Description 以默认模板 "Untitled Note" 创建一条新笔记
// @Tags 笔记
// @Produce json
// @Success 200 {object} map[string]any "{success, note}"
// @Failure 401 {object} pkgapp.ErrorRes "未登录"
// @Router /api/notes/create [post]
func (h *NoteHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	note, err := h.App.NoteService.Create(ctx, pkgapp.GetUID(c))
	if err != nil {
		h.logError(ctx, "NoteHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(gin.H{"note": note}))
}

// List 获取笔记列表
// @Summary 获取笔记列表
// @Description 按更新时间倒序返回当前用户的笔记摘要
// @Tags 笔记
// @Produce json
// @Success 200 {object} map[string]any "{success, notes:[{id,title,updatedAt}]}"
// @Failure 401 {object} pkgapp.ErrorRes "未登录"
// @Router /api/notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	notes, err := h.App.NoteService.List(ctx, pkgapp.GetUID(c))
	if err != nil {
		h.logError(ctx, "NoteHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(gin.H{"notes": notes}))
}

// Get 获取笔记详情
// @Summary 获取笔记详情
// @Tags 笔记
// @Produce json
// @Param id path int true "笔记 ID"
// @Success 200 {object} map[string]any "{success, note}"
// @Failure 400 {object} pkgapp.ErrorRes "笔记 ID 无效"
// @Failure 404 {object} pkgapp.ErrorRes "笔记不存在"
// @Router /api/notes/{id} [get]
func (h *NoteHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	noteID, ok := paramID(c, "id")
	if !ok {
		response.ToResponse(code.ErrorNoteIDInvalid)
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.Get(ctx, pkgapp.GetUID(c), noteID)
	if err != nil {
		h.logError(ctx, "NoteHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(gin.H{"note": note}))
}

// Update 编辑笔记，内容变化时保存历史版本
// @Summary 编辑笔记
// @Description 覆盖标题与内容；内容发生变化且不是未编辑的默认笔记时，先把旧内容保存为历史版本
// @Tags 笔记
// @Accept json
// @Produce json
// @Param id path int true "笔记 ID"
// @Param params body dto.NoteUpdateRequest true "标题与内容"
// @Success 200 {object} map[string]any "{success, note}"
// @Failure 400 {object} pkgapp.ErrorRes "参数错误"
// @Failure 404 {object} pkgapp.ErrorRes "笔记不存在"
// @Failure 409 {object} pkgapp.ErrorRes "并发修改冲突"
// @Router /api/notes/{id} [put]
func (h *NoteHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	noteID, ok := paramID(c, "id")
	if !ok {
		response.ToResponse(code.ErrorNoteIDInvalid)
		return
	}

	params := &dto.NoteUpdateRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Warn("NoteHandler.Update.BindAndValid errs", zap.Error(errs), zap.Int64(logger.FieldNoteID, noteID))
		response.ToResponse(code.ErrorNoteTitleContent.WithDetails(errs.ErrorsToString()...))
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.Update(ctx, pkgapp.GetUID(c), noteID, params.Title, *params.Content)
	if err != nil {
		h.logError(ctx, "NoteHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(gin.H{"note": note}))
}

// Delete 删除笔记及其历史版本
// @Summary 删除笔记
// @Tags 笔记
// @Produce json
// @Param id path int true "笔记 ID"
// @Success 200 {object} map[string]any "{success, message}"
// @Failure 404 {object} pkgapp.ErrorRes "笔记不存在"
// @Router /api/notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	noteID, ok := paramID(c, "id")
	if !ok {
		response.ToResponse(code.ErrorNoteIDInvalid)
		return
	}

	ctx := c.Request.Context()

	if err := h.App.NoteService.Delete(ctx, pkgapp.GetUID(c), noteID); err != nil {
		h.logError(ctx, "NoteHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessDelete)
}
