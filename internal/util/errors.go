package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrUserDisabled       = errors.New("用户已被停用")
	ErrCheckinExists      = errors.New("当天已有打卡记录")
	ErrDefinitionNotFound = errors.New("成就定义不存在")
	ErrAdminNotFound      = errors.New("管理员不存在")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDataIntegrity 表示存储层唯一性约束被破坏（同一天两条打卡、
	// 同一成就两条台账），属于致命数据故障，只上报不自动修复
	ErrDataIntegrity = errors.New("data integrity violation")
)
