package code

import (
	"fmt"
	"net/http"
)

type Code struct {
	// 状态码
	code int
	// HTTP 状态码
	httpStatus int
	// 状态
	status bool
	// 错误消息
	Lang lang
	// 数据
	data interface{}
	// 是否含有Data
	haveData bool
	// 错误详细信息
	details []string
	// 是否含有详情
	haveDetails bool
}

var codes = map[int]string{}
var sussCodes = map[int]string{}

// NewError registers an error code with its HTTP status
// NewError 注册一个错误码及其对应的 HTTP 状态
func NewError(code int, httpStatus int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.GetMessage()

	return &Code{code: code, httpStatus: httpStatus, status: false, Lang: l}
}

// NewSuss registers a success code, always rendered as 200
// NewSuss 注册一个成功码，HTTP 状态始终为 200
func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("成功码 %d 已经存在，请更换一个", code))
	}
	sussCodes[code] = l.GetMessage()

	return &Code{code: code, httpStatus: http.StatusOK, status: true, Lang: l}
}

// Clone 创建一个新的 Code 副本，不携带 data 与 details
func (e *Code) Clone() *Code {
	return &Code{
		code:       e.code,
		httpStatus: e.httpStatus,
		status:     e.status,
		Lang:       e.Lang,
		details:    []string{},
	}
}

func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

// MsgIn returns the message in the given language
// MsgIn 返回指定语言的消息
func (e *Code) MsgIn(language string) string {
	return e.Lang.Message(language)
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) HaveData() bool {
	return e.haveData
}

// WithData returns a copy carrying data; the registered code is never mutated
// WithData 返回携带数据的副本，不修改已注册的全局 Code
func (e *Code) WithData(data interface{}) *Code {
	c := e.Clone()
	c.details = e.details
	c.haveDetails = e.haveDetails
	c.haveData = true
	c.data = data
	return c
}

// WithDetails returns a copy carrying details
// WithDetails 返回携带详情的副本
func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.data = e.data
	c.haveData = e.haveData
	c.haveDetails = true
	c.details = append([]string{}, details...)
	return c
}

// Is matches codes by number so wrapped copies still compare equal to the registered code
// Is 按错误码比较，WithData/WithDetails 产生的副本与原始 Code 视为相同
func (e *Code) Is(target error) bool {
	t, ok := target.(*Code)
	if !ok {
		return false
	}
	return e.code == t.code && e.status == t.status
}

func (e *Code) StatusCode() int {
	return e.httpStatus
}
