package controller

import (
	"errors"
	"strconv"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TestAttemptController struct {
	Service *service.TestAttemptService
}

func NewTestAttemptController(svc *service.TestAttemptService) *TestAttemptController {
	return &TestAttemptController{Service: svc}
}

// @Summary 开始作答
// @Description 已有进行中的作答时返回该记录而不是新建
// @Tags 作答模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "试卷ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "试卷不存在或未发布"
// @Router /api/model-tests/{id}/start [post]
func (c *TestAttemptController) StartTest(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attempt, err := c.Service.StartTest(ctx.Param("id"), user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTestNotFound), errors.Is(err, util.ErrTestNotPublished):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, attempt)
}

type submitAnswerReq struct {
	QuestionID  string `json:"questionId" binding:"required"`
	AnswerIndex *int   `json:"answerIndex" binding:"required"`
}

// @Summary 提交单题答案
// @Description 同一题重复提交时后写覆盖先写
// @Tags 作答模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "作答ID"
// @Param body body submitAnswerReq true "题目与选项下标"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "作答已结束"
// @Router /api/attempts/{id}/answers [post]
func (c *TestAttemptController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req submitAnswerReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.Service.SubmitAnswer(ctx.Param("id"), req.QuestionID, *req.AnswerIndex)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAttemptNotActive):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"saved": true})
}

// @Summary 交卷
// @Description 计分并结束作答；重复交卷返回冲突
// @Tags 作答模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "作答ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "作答已结束"
// @Router /api/attempts/{id}/finish [post]
func (c *TestAttemptController) FinishTest(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attempt, err := c.Service.FinishTest(ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound), errors.Is(err, util.ErrTestNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAttemptNotActive):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, attempt)
}

// @Summary 查询作答结果
// @Description 逐题对错与解析，按试卷题序排列；未完成的作答得分记 0
// @Tags 作答模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "作答ID"
// @Success 200 {object} util.Response{data=service.TestResult}
// @Router /api/attempts/{id}/results [get]
func (c *TestAttemptController) GetTestResults(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.Service.GetTestResults(ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound), errors.Is(err, util.ErrTestNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	// 只有本人或教师、管理员可以查看
	if result.Attempt.UserID != user.UserID && user.Role == model.Student {
		util.Forbidden(ctx)
		return
	}

	util.Success(ctx, result)
}

// @Summary 我的作答历史
// @Tags 作答模块
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/attempts [get]
func (c *TestAttemptController) ListMyAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	attempts, total, err := c.Service.ListMyAttempts(user.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"items": attempts, "total": total})
}
