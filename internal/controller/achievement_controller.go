package controller

import (
	"errors"
	"habit_coach_backend/internal/service"
	"habit_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	AchievementService *service.AchievementService
	UserService        *service.UserService
}

func NewAchievementController(achievementService *service.AchievementService, userService *service.UserService) *AchievementController {
	return &AchievementController{
		AchievementService: achievementService,
		UserService:        userService,
	}
}

// @Summary 用户成就列表
// @Description 返回用户已解锁的成就（含展示文案），最新的在前
// @Tags 成就
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "用户 ID"
// @Success 200 {object} util.Response
// @Router /api/users/{userId}/achievements [get]
func (c *AchievementController) ListUserAchievements(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("userId"))
	if _, err := c.UserService.GetActiveUser(userID); err != nil {
		util.NotFound(ctx)
		return
	}

	achievements, err := c.AchievementService.ListAchievements(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, achievements)
}

// @Summary 成就目录
// @Description 管理后台查看全部成就定义
// @Tags 管理后台
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/achievement-definitions [get]
func (c *AchievementController) ListDefinitions(ctx *gin.Context) {
	defs, err := c.AchievementService.ListDefinitions()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, defs)
}

// SetActiveRequest 成就定义的启用状态
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// @Summary 停用/启用成就定义
// @Description 停用后的定义不再参与评估，已发出的成就不受影响
// @Tags 管理后台
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "成就 key"
// @Param body body controller.SetActiveRequest true "启用状态"
// @Success 200 {object} util.Response
// @Router /api/admin/achievement-definitions/{key}/active [patch]
func (c *AchievementController) SetDefinitionActive(ctx *gin.Context) {
	key := ctx.Param("key")

	var req SetActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AchievementService.SetDefinitionActive(key, *req.Active); err != nil {
		if errors.Is(err, util.ErrDefinitionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"key": key, "active": *req.Active})
}
