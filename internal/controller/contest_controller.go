package controller

import (
	"errors"
	"strconv"
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContestController struct {
	Service *service.ContestService
}

func NewContestController(svc *service.ContestService) *ContestController {
	return &ContestController{Service: svc}
}

// @Summary 创建比赛
// @Tags 比赛模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ContestReq true "比赛信息"
// @Success 201 {object} util.Response
// @Router /api/teacher/contests [post]
func (c *ContestController) Create(ctx *gin.Context) {
	var req service.ContestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	contest, err := c.Service.Create(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, contest)
}

// @Summary 比赛列表
// @Tags 比赛模块
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/contests [get]
func (c *ContestController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	contests, total, err := c.Service.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"items": contests, "total": total})
}

// @Summary 比赛详情
// @Tags 比赛模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "比赛ID"
// @Success 200 {object} util.Response
// @Router /api/contests/{id} [get]
func (c *ContestController) Get(ctx *gin.Context) {
	contest, err := c.Service.Get(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, contest)
}

// @Summary 报名比赛
// @Description 重复报名为幂等操作
// @Tags 比赛模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "比赛ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "比赛已结束"
// @Router /api/contests/{id}/join [post]
func (c *ContestController) Join(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Service.Join(user.UserID, ctx.Param("id")); err != nil {
		switch {
		case errors.Is(err, util.ErrContestNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrContestNotRunning):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"joined": true})
}

// @Summary 比赛排行榜
// @Tags 比赛模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "比赛ID"
// @Param top query int false "名次数量" default(10)
// @Success 200 {object} util.Response
// @Router /api/contests/{id}/leaderboard [get]
func (c *ContestController) Leaderboard(ctx *gin.Context) {
	top, _ := strconv.Atoi(ctx.DefaultQuery("top", "10"))

	entries, err := c.Service.Leaderboard(ctx.Param("id"), top)
	if err != nil {
		if errors.Is(err, util.ErrContestNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"items": entries})
}
