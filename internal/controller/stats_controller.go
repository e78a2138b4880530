package controller

import (
	"errors"
	"habit_coach_backend/internal/service"
	"habit_coach_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsService *service.StatsService
}

func NewStatsController(statsService *service.StatsService) *StatsController {
	return &StatsController{StatsService: statsService}
}

// @Summary 用户统计快照
// @Description 从完整打卡历史实时推导连击、依从率和总分，不走缓存
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "用户 ID"
// @Success 200 {object} util.Response{data=service.StatsSnapshot}
// @Router /api/users/{userId}/stats [get]
func (c *StatsController) GetStats(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("userId"))

	snapshot, err := c.StatsService.ComputeStats(userID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, snapshot)
}

// @Summary 得分走势
// @Description 最近 N 次打卡的逐日得分增量，按时间正序
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "用户 ID"
// @Param days query int false "天数（2-90）" default(14)
// @Success 200 {object} util.Response
// @Router /api/users/{userId}/trend [get]
func (c *StatsController) GetTrend(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("userId"))
	days, _ := strconv.Atoi(ctx.DefaultQuery("days", "14"))

	points, err := c.StatsService.Trend(userID, days)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, points)
}
