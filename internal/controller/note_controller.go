package controller

import (
	"errors"
	"strconv"
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NoteController struct {
	Service *service.NoteService
}

func NewNoteController(svc *service.NoteService) *NoteController {
	return &NoteController{Service: svc}
}

// @Summary 创建笔记
// @Tags 笔记模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.NoteReq true "笔记内容"
// @Success 201 {object} util.Response
// @Router /api/notes [post]
func (c *NoteController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.NoteReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	note, err := c.Service.Create(user.UserID, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, note)
}

// @Summary 获取笔记详情
// @Description 非公开笔记只有作者可见
// @Tags 笔记模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "笔记ID"
// @Success 200 {object} util.Response
// @Router /api/notes/{id} [get]
func (c *NoteController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	note, err := c.Service.Get(user.UserID, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNoteNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, note)
}

// @Summary 更新笔记
// @Tags 笔记模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "笔记ID"
// @Param body body service.NoteReq true "笔记字段，缺省字段不变"
// @Success 200 {object} util.Response
// @Router /api/notes/{id} [put]
func (c *NoteController) Update(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.NoteReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	note, err := c.Service.Update(user.UserID, ctx.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNoteNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, note)
}

// @Summary 删除笔记
// @Tags 笔记模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "笔记ID"
// @Success 200 {object} util.Response
// @Router /api/notes/{id} [delete]
func (c *NoteController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := ctx.Param("id")
	if err := c.Service.Delete(user.UserID, id); err != nil {
		switch {
		case errors.Is(err, util.ErrNoteNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary 我的笔记列表
// @Tags 笔记模块
// @Produce json
// @Security BearerAuth
// @Param subject query string false "科目"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/notes [get]
func (c *NoteController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	subject := ctx.Query("subject")

	notes, total, err := c.Service.List(user.UserID, subject, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"items": notes, "total": total})
}

// @Summary 上传笔记附件
// @Tags 笔记模块
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "笔记ID"
// @Param file formData file true "附件文件"
// @Success 200 {object} util.Response
// @Router /api/notes/{id}/attachment [post]
func (c *NoteController) AttachFile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	note, err := c.Service.AttachFile(user.UserID, ctx.Param("id"), file)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNoteNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, note)
}
