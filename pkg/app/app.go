package app

import (
	"net/http"

	"github.com/haierkeys/fast-note-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// Context keys shared between middleware and response rendering
// 中间件与响应渲染共用的 Context 键
const (
	TraceIDKey    = "trace_id"
	LangKey       = "lang"
	TranslatorKey = "trans"
	StatusCodeKey = "status_code"
)

// VersionInfo version information // 版本信息
type VersionInfo struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}

type Response struct {
	Ctx *gin.Context
}

// ErrorRes is the error body: {success:false, code, statusCode, message, details?, traceId?}
// ErrorRes 错误响应结构
type ErrorRes struct {
	Success    bool     `json:"success"`
	Code       int      `json:"code"`
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Details    []string `json:"details,omitempty"`
	TraceID    string   `json:"traceId,omitempty"`
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

// GetRequestIP gets the request IP
// GetRequestIP 获取ip
func GetRequestIP(c *gin.Context) string {
	reqIP := c.ClientIP()
	if reqIP == "::1" {
		reqIP = "127.0.0.1"
	}
	return reqIP
}

// GetTraceID reads the trace id stored by the trace middleware
// GetTraceID 获取追踪中间件写入的 TraceID
func GetTraceID(c *gin.Context) string {
	if v, ok := c.Get(TraceIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetLang reads the request language, falling back to the process default
// GetLang 获取请求语言，缺省为全局默认语言
func GetLang(c *gin.Context) string {
	if v, ok := c.Get(LangKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return code.GetGlobalDefaultLang()
}

// ToResponse renders codeObj. Success bodies are {success:true, ...data}; a map payload is
// flattened into the top level, any other payload is placed under "data".
// Non generic success codes also carry "message".
// ToResponse 输出响应：成功时 map 类型的数据平铺到顶层
func (r *Response) ToResponse(codeObj *code.Code) {
	if !codeObj.Status() {
		r.ToErrorResponse(codeObj)
		return
	}

	content := gin.H{"success": true}
	if codeObj.Code() != code.Success.Code() {
		content["message"] = codeObj.MsgIn(GetLang(r.Ctx))
	}
	if codeObj.HaveData() {
		switch data := codeObj.Data().(type) {
		case gin.H:
			for k, v := range data {
				content[k] = v
			}
		case map[string]interface{}:
			for k, v := range data {
				content[k] = v
			}
		default:
			content["data"] = data
		}
	}

	r.send(codeObj.StatusCode(), content)
}

// ToErrorResponse renders an error code with its own HTTP status
// ToErrorResponse 按错误码自带的 HTTP 状态输出错误
func (r *Response) ToErrorResponse(codeObj *code.Code) {
	content := ErrorRes{
		Success:    false,
		Code:       codeObj.Code(),
		StatusCode: codeObj.StatusCode(),
		Message:    codeObj.MsgIn(GetLang(r.Ctx)),
		TraceID:    GetTraceID(r.Ctx),
	}
	if codeObj.HaveDetails() {
		content.Details = codeObj.Details()
	}
	r.send(codeObj.StatusCode(), content)
}

// ToResponseRaw writes obj as is, without the success envelope
// ToResponseRaw 原样输出，不包裹 success 字段
func (r *Response) ToResponseRaw(obj interface{}) {
	r.send(http.StatusOK, obj)
}

func (r *Response) send(statusCode int, content interface{}) {
	r.Ctx.Set(StatusCodeKey, statusCode)
	r.Ctx.JSON(statusCode, content)
}
