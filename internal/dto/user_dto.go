// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// UserCreateRequest 用户注册请求参数
type UserCreateRequest struct {
	Email    string `json:"email" form:"email" binding:"required,loose_email" example:"ada@example.com"`
	Password string `json:"password" form:"password" binding:"required,min=7" example:"secret123"`
}

// UserLoginRequest 用户登录请求参数
type UserLoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,trimmed_required" example:"ada@example.com"`
	Password string `json:"password" form:"password" binding:"required" example:"secret123"`
}

// UserDTO 用户数据传输对象
type UserDTO struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// UserAuthDTO is returned by register and login; Token goes to the cookie, never to the body
// UserAuthDTO 注册/登录结果，Token 仅写入 Cookie
type UserAuthDTO struct {
	User  *UserDTO
	Token string
}
