package controller

import (
	"habit_coach_backend/internal/service"
	"habit_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HabitController struct {
	HabitService *service.HabitService
	UserService  *service.UserService
}

func NewHabitController(habitService *service.HabitService, userService *service.UserService) *HabitController {
	return &HabitController{
		HabitService: habitService,
		UserService:  userService,
	}
}

// @Summary 批量维护习惯
// @Description 按 (用户, key) 插入或更新习惯列表
// @Tags 习惯
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "用户 ID"
// @Param habits body []service.HabitRequest true "习惯列表"
// @Success 200 {object} util.Response
// @Router /api/users/{userId}/habits [post]
func (c *HabitController) UpsertHabits(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("userId"))
	if _, err := c.UserService.GetActiveUser(userID); err != nil {
		util.NotFound(ctx)
		return
	}

	var reqs []service.HabitRequest
	if err := ctx.ShouldBindJSON(&reqs); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	habits, err := c.HabitService.UpsertHabits(userID, reqs)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, habits)
}

// @Summary 习惯列表
// @Description 返回用户当前启用的习惯
// @Tags 习惯
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "用户 ID"
// @Success 200 {object} util.Response
// @Router /api/users/{userId}/habits [get]
func (c *HabitController) ListHabits(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("userId"))
	if _, err := c.UserService.GetActiveUser(userID); err != nil {
		util.NotFound(ctx)
		return
	}

	habits, err := c.HabitService.ListHabits(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, habits)
}
