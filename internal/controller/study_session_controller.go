package controller

import (
	"errors"
	"strconv"
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudySessionController struct {
	Service *service.StudySessionService
}

func NewStudySessionController(svc *service.StudySessionService) *StudySessionController {
	return &StudySessionController{Service: svc}
}

type startSessionReq struct {
	Subject string `json:"subject"`
}

// @Summary 开始学习计时
// @Description 已有进行中的会话时返回该会话
// @Tags 学习记录模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body startSessionReq false "科目"
// @Success 200 {object} util.Response
// @Router /api/study-sessions/start [post]
func (c *StudySessionController) Start(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req startSessionReq
	_ = ctx.ShouldBindJSON(&req)

	session, err := c.Service.Start(user.UserID, req.Subject)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// @Summary 结束学习计时
// @Tags 学习记录模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "会话已结束"
// @Router /api/study-sessions/{id}/stop [post]
func (c *StudySessionController) Stop(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.Service.Stop(user.UserID, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrSessionAlreadyEnded):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, session)
}

// @Summary 学习记录列表
// @Tags 学习记录模块
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/study-sessions [get]
func (c *StudySessionController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	sessions, total, err := c.Service.List(user.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"items": sessions, "total": total})
}
