package controller

import (
	"errors"
	"strconv"
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SavedItemController struct {
	Service *service.SavedItemService
}

func NewSavedItemController(svc *service.SavedItemService) *SavedItemController {
	return &SavedItemController{Service: svc}
}

type savedItemReq struct {
	Kind     string `json:"kind" binding:"required"`
	TargetID string `json:"targetId" binding:"required"`
}

// @Summary 收藏
// @Description kind 取 note、question 或 test；重复收藏为幂等操作
// @Tags 收藏模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body savedItemReq true "收藏目标"
// @Success 200 {object} util.Response
// @Router /api/saved-items [post]
func (c *SavedItemController) Save(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req savedItemReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.Save(user.UserID, req.Kind, req.TargetID); err != nil {
		if errors.Is(err, util.ErrInvalidSavedKind) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"saved": true})
}

// @Summary 取消收藏
// @Tags 收藏模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body savedItemReq true "收藏目标"
// @Success 200 {object} util.Response
// @Router /api/saved-items [delete]
func (c *SavedItemController) Unsave(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req savedItemReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.Unsave(user.UserID, req.Kind, req.TargetID); err != nil {
		if errors.Is(err, util.ErrInvalidSavedKind) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"removed": true})
}

// @Summary 我的收藏列表
// @Tags 收藏模块
// @Produce json
// @Security BearerAuth
// @Param kind query string false "收藏类型"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/saved-items [get]
func (c *SavedItemController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	kind := ctx.Query("kind")

	items, total, err := c.Service.List(user.UserID, kind, page, limit)
	if err != nil {
		if errors.Is(err, util.ErrInvalidSavedKind) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"items": items, "total": total})
}
