package controller

import (
	"errors"
	"habit_coach_backend/internal/service"
	"habit_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CheckinController struct {
	CheckinService *service.CheckinService
}

func NewCheckinController(checkinService *service.CheckinService) *CheckinController {
	return &CheckinController{CheckinService: checkinService}
}

// @Summary 提交打卡
// @Description 写入一天的打卡记录并评估成就，返回本次新解锁的成就 key
// @Tags 打卡
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "用户 ID"
// @Param checkin body service.CheckInRequest true "打卡内容"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response "当天已打卡"
// @Router /api/users/{userId}/checkins [post]
func (c *CheckinController) CreateCheckIn(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("userId"))

	var req service.CheckInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	checkin, newly, err := c.CheckinService.CreateCheckIn(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrUserDisabled):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrCheckinExists):
			util.Conflict(ctx, "Check-in already exists for this day")
		case errors.Is(err, util.ErrDataIntegrity):
			util.LogInternalError(ctx, err)
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Created(ctx, gin.H{
		"checkin":       checkin,
		"newlyUnlocked": newly,
	})
}
