package code

import "net/http"

var (
	Success = NewSuss(1, lang{en: "Success", zh_cn: "成功"})

	SuccessCreate = NewSuss(2, lang{en: "Registration successful", zh_cn: "注册成功"})
	SuccessUpdate = NewSuss(3, lang{en: "Updated successfully", zh_cn: "更新成功"})
	SuccessDelete = NewSuss(4, lang{en: "Note deleted successfully", zh_cn: "笔记删除成功"})
	SuccessLogin  = NewSuss(5, lang{en: "Login successful", zh_cn: "登录成功"})
	SuccessLogout = NewSuss(6, lang{en: "Logged out successfully", zh_cn: "退出登录成功"})

	ErrorServerInternal = NewError(500, http.StatusInternalServerError, lang{en: "Internal Server Error", zh_cn: "服务器内部错误"})
	ErrorNotFoundAPI    = NewError(404, http.StatusNotFound, lang{en: "API not found", zh_cn: "接口不存在"})

	ErrorInvalidParams   = NewError(400, http.StatusBadRequest, lang{en: "Invalid parameters", zh_cn: "参数错误"})
	ErrorTooManyRequests = NewError(429, http.StatusTooManyRequests, lang{en: "Too many requests", zh_cn: "请求过多"})

	ErrorDBQuery        = NewError(1001, http.StatusInternalServerError, lang{en: "Database query failed", zh_cn: "数据库查询失败"})
	ErrorDBUnavailable  = NewError(1002, http.StatusServiceUnavailable, lang{en: "Database unavailable", zh_cn: "数据库不可用"})
	ErrorWriteQueueBusy = NewError(1003, http.StatusServiceUnavailable, lang{en: "Server busy, please retry", zh_cn: "服务器繁忙，请稍后重试"})

	// 认证
	ErrorNotUserAuthToken     = NewError(2001, http.StatusUnauthorized, lang{en: "Unauthorized", zh_cn: "未登录"})
	ErrorInvalidUserAuthToken = NewError(2002, http.StatusUnauthorized, lang{en: "Invalid or expired session", zh_cn: "登录状态无效或已过期"})
	ErrorTokenGenerate        = NewError(2003, http.StatusInternalServerError, lang{en: "Failed to issue session token", zh_cn: "会话令牌生成失败"})

	// 用户
	ErrorUserRegisterIsDisable   = NewError(3001, http.StatusForbidden, lang{en: "Registration is disabled", zh_cn: "注册功能已关闭"})
	ErrorUserEmailAlreadyExists  = NewError(3002, http.StatusConflict, lang{en: "This email is already registered.", zh_cn: "该邮箱已注册"})
	ErrorUserNotFound            = NewError(3003, http.StatusNotFound, lang{en: "No account found with this email.", zh_cn: "该邮箱未注册"})
	ErrorUserLoginPasswordFailed = NewError(3004, http.StatusUnauthorized, lang{en: "Incorrect password. Please try again.", zh_cn: "密码错误，请重试"})
	ErrorUserRegister            = NewError(3005, http.StatusInternalServerError, lang{en: "Something went wrong during registration.", zh_cn: "注册失败"})
	ErrorPasswordHash            = NewError(3006, http.StatusInternalServerError, lang{en: "Failed to hash password", zh_cn: "密码加密失败"})
	ErrorUserEmailInvalid        = NewError(3007, http.StatusBadRequest, lang{en: "Invalid email format.", zh_cn: "邮箱格式错误"})
	ErrorUserPasswordTooShort    = NewError(3008, http.StatusBadRequest, lang{en: "Password must be more than 6 characters.", zh_cn: "密码长度必须大于 6 位"})

	// 笔记
	ErrorNoteNotFound     = NewError(4001, http.StatusNotFound, lang{en: "Note not found", zh_cn: "笔记不存在"})
	ErrorNoteIDInvalid    = NewError(4002, http.StatusBadRequest, lang{en: "Invalid note id", zh_cn: "笔记 ID 无效"})
	ErrorNoteEditConflict = NewError(4003, http.StatusConflict, lang{en: "Note was modified concurrently, please retry", zh_cn: "笔记正在被同时修改，请重试"})
	ErrorNoteTitleContent = NewError(4004, http.StatusBadRequest, lang{en: "Title and content required", zh_cn: "标题和内容不能为空"})

	// 历史版本
	ErrorHistoryNotFound       = NewError(5001, http.StatusNotFound, lang{en: "Version not found", zh_cn: "历史版本不存在"})
	ErrorHistoryForbidden      = NewError(5002, http.StatusForbidden, lang{en: "Unauthorized", zh_cn: "无权访问该历史版本"})
	ErrorHistoryCurrentVersion = NewError(5003, http.StatusBadRequest, lang{en: "Use note endpoint for current version", zh_cn: "当前版本请使用笔记接口获取"})
	ErrorHistoryIDInvalid      = NewError(5004, http.StatusBadRequest, lang{en: "Invalid version id", zh_cn: "历史版本 ID 无效"})
)
