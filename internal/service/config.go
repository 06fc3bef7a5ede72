// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import "time"

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	User UserServiceConfig // User related config // 用户相关配置
	App  AppServiceConfig  // App related config // 应用相关配置
}

// UserServiceConfig user service configuration
// UserServiceConfig 用户服务配置
type UserServiceConfig struct {
	RegisterIsEnable bool // Whether registration is enabled // 注册是否启用
}

// AppServiceConfig app service configuration
// AppServiceConfig 应用服务配置
type AppServiceConfig struct {
	EditMaxRetries int           // Retries after an optimistic version conflict // 版本冲突后的最大重试次数
	EditRetryMin   time.Duration // First retry delay // 首次重试等待
	EditRetryMax   time.Duration // Retry delay cap // 重试等待上限
}

// DefaultAppServiceConfig 默认应用服务配置
func DefaultAppServiceConfig() AppServiceConfig {
	return AppServiceConfig{
		EditMaxRetries: 5,
		EditRetryMin:   5 * time.Millisecond,
		EditRetryMax:   200 * time.Millisecond,
	}
}

func (c *AppServiceConfig) withDefaults() AppServiceConfig {
	d := DefaultAppServiceConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.EditMaxRetries < 0 {
		out.EditMaxRetries = 0
	}
	if out.EditRetryMin <= 0 {
		out.EditRetryMin = d.EditRetryMin
	}
	if out.EditRetryMax < out.EditRetryMin {
		out.EditRetryMax = out.EditRetryMin
	}
	return out
}
