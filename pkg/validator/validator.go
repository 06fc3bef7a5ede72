// Package validator 提供 gin 使用的 validator/v10 引擎及自定义校验规则
package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/haierkeys/fast-note-service/pkg/util"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// CustomValidator implements binding.StructValidator with a lazily built engine
// CustomValidator 实现 gin 的 binding.StructValidator
type CustomValidator struct {
	Once     sync.Once
	Validate *validator.Validate
}

var _ binding.StructValidator = (*CustomValidator)(nil)

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

// ValidateStruct validates structs and pointers to structs, ignoring everything else
func (v *CustomValidator) ValidateStruct(obj interface{}) error {
	if kindOfData(obj) == reflect.Struct {
		v.lazyinit()
		if err := v.Validate.Struct(obj); err != nil {
			return err
		}
	}
	return nil
}

func (v *CustomValidator) Engine() interface{} {
	v.lazyinit()
	return v.Validate
}

func (v *CustomValidator) lazyinit() {
	v.Once.Do(func() {
		v.Validate = validator.New()
		v.Validate.SetTagName("binding")
	})
}

func kindOfData(data interface{}) reflect.Kind {
	value := reflect.ValueOf(data)
	valueType := value.Kind()

	if valueType == reflect.Ptr {
		valueType = value.Elem().Kind()
	}
	return valueType
}

// RegisterCustom registers project rules on gin's active validator engine
// RegisterCustom 在 gin 当前的校验引擎上注册自定义规则
func RegisterCustom() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return RegisterOn(v)
}

// RegisterOn registers:
//   - loose_email: "local@domain.tld" after trimming spaces
//   - trimmed_required: non empty after trimming spaces
func RegisterOn(v *validator.Validate) error {
	if err := v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return util.IsValidEmail(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("trimmed_required", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}
