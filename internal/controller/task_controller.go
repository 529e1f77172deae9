package controller

import (
	"errors"
	"strconv"
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TaskController struct {
	Service *service.TaskService
}

func NewTaskController(svc *service.TaskService) *TaskController {
	return &TaskController{Service: svc}
}

// @Summary 创建学习任务
// @Tags 任务模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.TaskReq true "任务内容"
// @Success 201 {object} util.Response
// @Router /api/tasks [post]
func (c *TaskController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.TaskReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.Service.Create(user.UserID, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, task)
}

// @Summary 更新任务
// @Tags 任务模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "任务ID"
// @Param body body service.TaskReq true "任务字段，缺省字段不变"
// @Success 200 {object} util.Response
// @Router /api/tasks/{id} [put]
func (c *TaskController) Update(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.TaskReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.Service.Update(user.UserID, ctx.Param("id"), req)
	if err != nil {
		c.writeTaskError(ctx, err)
		return
	}

	util.Success(ctx, task)
}

type taskCompletionReq struct {
	Completed *bool `json:"completed" binding:"required"`
}

// @Summary 勾选或取消勾选任务
// @Tags 任务模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "任务ID"
// @Param body body taskCompletionReq true "完成状态"
// @Success 200 {object} util.Response
// @Router /api/tasks/{id}/completion [put]
func (c *TaskController) SetCompleted(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req taskCompletionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.Service.SetCompleted(user.UserID, ctx.Param("id"), *req.Completed)
	if err != nil {
		c.writeTaskError(ctx, err)
		return
	}

	util.Success(ctx, task)
}

// @Summary 删除任务
// @Tags 任务模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "任务ID"
// @Success 200 {object} util.Response
// @Router /api/tasks/{id} [delete]
func (c *TaskController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := ctx.Param("id")
	if err := c.Service.Delete(user.UserID, id); err != nil {
		c.writeTaskError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary 我的任务列表
// @Tags 任务模块
// @Produce json
// @Security BearerAuth
// @Param completed query bool false "按完成状态过滤"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/tasks [get]
func (c *TaskController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	var completed *bool
	if v := ctx.Query("completed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			util.BadRequest(ctx, "completed must be a boolean")
			return
		}
		completed = &b
	}

	tasks, total, err := c.Service.List(user.UserID, completed, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"items": tasks, "total": total})
}

func (c *TaskController) writeTaskError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrTaskNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
