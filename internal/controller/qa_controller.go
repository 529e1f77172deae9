package controller

import (
	"errors"
	"strconv"
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QAController struct {
	Service     *service.QAService
	VoteService *service.VoteService
}

func NewQAController(svc *service.QAService, voteSvc *service.VoteService) *QAController {
	return &QAController{Service: svc, VoteService: voteSvc}
}

// @Summary 发布问题
// @Tags 问答模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.QuestionReq true "问题内容"
// @Success 201 {object} util.Response
// @Router /api/questions [post]
func (c *QAController) CreateQuestion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.CreateQuestion(user.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, q)
}

// @Summary 问题详情（含回答，按票数排序）
// @Tags 问答模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "问题ID"
// @Success 200 {object} util.Response
// @Router /api/questions/{id} [get]
func (c *QAController) GetQuestion(ctx *gin.Context) {
	q, err := c.Service.GetQuestion(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, q)
}

// @Summary 问题列表
// @Tags 问答模块
// @Produce json
// @Security BearerAuth
// @Param subject query string false "科目"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/questions [get]
func (c *QAController) ListQuestions(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	subject := ctx.Query("subject")

	qs, total, err := c.Service.ListQuestions(subject, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"items": qs, "total": total})
}

// @Summary 删除问题
// @Description 提问者本人或管理员可删除
// @Tags 问答模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "问题ID"
// @Success 200 {object} util.Response
// @Router /api/questions/{id} [delete]
func (c *QAController) DeleteQuestion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := ctx.Param("id")
	if err := c.Service.DeleteQuestion(user.UserID, user.Role, id); err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
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

// @Summary 回答问题
// @Description 回答后通知提问者
// @Tags 问答模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "问题ID"
// @Param body body service.AnswerReq true "回答内容"
// @Success 201 {object} util.Response
// @Router /api/questions/{id}/answers [post]
func (c *QAController) PostAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AnswerReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.Service.PostAnswer(user.UserID, ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, answer)
}

// @Summary 采纳回答
// @Tags 问答模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "问题ID"
// @Param answerId path string true "回答ID"
// @Success 200 {object} util.Response
// @Router /api/questions/{id}/answers/{answerId}/accept [post]
func (c *QAController) AcceptAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	err := c.Service.AcceptAnswer(user.UserID, ctx.Param("id"), ctx.Param("answerId"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"accepted": true})
}

type voteReq struct {
	TargetType string `json:"targetType" binding:"required"`
	TargetID   string `json:"targetId" binding:"required"`
	Value      int    `json:"value" binding:"required"`
}

// @Summary 投票
// @Description value 取 +1 或 -1；换边时覆盖旧票
// @Tags 问答模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body voteReq true "投票目标与方向"
// @Success 200 {object} util.Response
// @Router /api/votes [post]
func (c *QAController) CastVote(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req voteReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.VoteService.Cast(user.UserID, req.TargetType, req.TargetID, req.Value); err != nil {
		if errors.Is(err, util.ErrInvalidVoteValue) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"voted": true})
}

// @Summary 撤票
// @Tags 问答模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body voteReq true "投票目标（value 字段忽略）"
// @Success 200 {object} util.Response
// @Router /api/votes [delete]
func (c *QAController) RetractVote(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req struct {
		TargetType string `json:"targetType" binding:"required"`
		TargetID   string `json:"targetId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.VoteService.Retract(user.UserID, req.TargetType, req.TargetID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"retracted": true})
}
