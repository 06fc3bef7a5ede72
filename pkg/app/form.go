package app

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

type ValidError struct {
	Key     string
	Tag     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// ErrorsToString returns "key: message" pairs
// ErrorsToString 返回 "字段: 错误" 列表
func (v ValidErrors) ErrorsToString() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Key+": "+err.Message)
	}
	return errs
}

// MapsToString returns errors keyed by field name
// MapsToString 以字段名为键返回错误
func (v ValidErrors) MapsToString() map[string]string {
	out := make(map[string]string, len(v))
	for _, err := range v {
		out[err.Key] = err.Message
	}
	return out
}

// Failed reports whether field failed the rule tag
// Failed 判断字段是否未通过指定规则
func (v ValidErrors) Failed(field, tag string) bool {
	for _, err := range v {
		if err.Key == field && err.Tag == tag {
			return true
		}
	}
	return false
}

// BindAndValid binds the request into obj with gin's binding and validates it.
// Validation messages are translated with the translator set by the lang middleware.
// BindAndValid 绑定并校验请求参数
func BindAndValid(c *gin.Context, obj any) (bool, ValidErrors) {
	var errs ValidErrors
	err := c.ShouldBind(obj)
	if err == nil {
		return true, nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errs = append(errs, &ValidError{
			Key:     "body",
			Message: err.Error(),
		})
		return false, errs
	}

	var trans ut.Translator
	if v, exists := c.Get(TranslatorKey); exists {
		trans, _ = v.(ut.Translator)
	}
	for _, validationErr := range validationErrors {
		msg := validationErr.Error()
		if trans != nil {
			msg = validationErr.Translate(trans)
		}
		errs = append(errs, &ValidError{
			Key:     validationErr.Field(),
			Tag:     validationErr.Tag(),
			Message: msg,
		})
	}
	return false, errs
}
