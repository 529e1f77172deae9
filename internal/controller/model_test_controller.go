package controller

import (
	"errors"
	"strconv"
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ModelTestController struct {
	Service *service.ModelTestService
}

func NewModelTestController(svc *service.ModelTestService) *ModelTestController {
	return &ModelTestController{Service: svc}
}

// @Summary 创建模拟测试试卷
// @Tags 模拟测试模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ModelTestReq true "试卷信息"
// @Success 201 {object} util.Response
// @Router /api/teacher/model-tests [post]
func (c *ModelTestController) CreateTest(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ModelTestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.Service.Create(user.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, test)
}

// @Summary 更新模拟测试试卷
// @Description 已发布试卷的题目与分值不可修改
// @Tags 模拟测试模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "试卷ID"
// @Param body body service.ModelTestReq true "试卷信息"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "试卷已发布"
// @Router /api/teacher/model-tests/{id} [put]
func (c *ModelTestController) UpdateTest(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ModelTestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.Service.Update(user.UserID, ctx.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTestNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrTestPublished):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, test)
}

// @Summary 发布试卷
// @Description 发布后学生可见，题目冻结
// @Tags 模拟测试模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "试卷ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/model-tests/{id}/publish [post]
func (c *ModelTestController) PublishTest(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	test, err := c.Service.Publish(user.UserID, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTestNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, test)
}

// @Summary 删除试卷
// @Tags 模拟测试模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "试卷ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/model-tests/{id} [delete]
func (c *ModelTestController) DeleteTest(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := ctx.Param("id")
	if err := c.Service.Delete(user.UserID, id); err != nil {
		switch {
		case errors.Is(err, util.ErrTestNotFound):
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

// @Summary 获取试卷详情
// @Description 学生只能访问已发布的试卷
// @Tags 模拟测试模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "试卷ID"
// @Success 200 {object} util.Response
// @Router /api/model-tests/{id} [get]
func (c *ModelTestController) GetTest(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	test, err := c.Service.Get(user.UserID, user.Role, ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, test)
}

// @Summary 获取已发布试卷列表
// @Tags 模拟测试模块
// @Produce json
// @Security BearerAuth
// @Param subject query string false "科目"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/model-tests [get]
func (c *ModelTestController) ListPublished(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	subject := ctx.Query("subject")

	tests, total, err := c.Service.ListPublished(subject, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"items": tests, "total": total})
}

// @Summary 获取全部试卷列表（含未发布）
// @Tags 模拟测试模块
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/teacher/model-tests [get]
func (c *ModelTestController) ListAll(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	tests, total, err := c.Service.ListAll(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"items": tests, "total": total})
}
