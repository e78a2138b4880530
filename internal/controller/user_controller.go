package controller

import (
	"errors"
	"habit_coach_backend/internal/service"
	"habit_coach_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// @Summary 注册用户
// @Description 按 Telegram 用户 ID 幂等注册，已存在则返回现有用户
// @Tags 用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param user body service.UserCreateRequest true "用户信息"
// @Success 200 {object} util.Response
// @Router /api/users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req service.UserCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.CreateOrGetUser(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, user)
}

// @Summary 查询用户
// @Description 按 Telegram 用户 ID 查询
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Param tgUserId path int true "Telegram 用户 ID"
// @Success 200 {object} util.Response
// @Router /api/tg-users/{tgUserId} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	tgUserID, err := strconv.ParseInt(ctx.Param("tgUserId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "Invalid telegram user ID")
		return
	}

	user, err := c.UserService.GetByTgUserID(tgUserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, user)
}

// @Summary 上传用户头像
// @Description 上传头像图片并更新用户资料
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "用户 ID"
// @Param avatar formData file true "头像图片"
// @Success 200 {object} util.Response
// @Router /api/users/{userId}/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("userId"))

	file, err := ctx.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "avatar file is required")
		return
	}

	url, err := c.UserService.UploadAvatar(userID, file)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"avatar": url})
}

// @Summary 用户列表
// @Description 管理后台的分页用户列表
// @Tags 管理后台
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	users, total, err := c.UserService.ListUsers(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  users,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
