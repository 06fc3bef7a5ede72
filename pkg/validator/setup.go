package validator

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// InstallGin replaces gin's validator with CustomValidator, reports fields by their json
// name, registers the custom rules and the en/zh message translations.
// InstallGin 安装 gin 校验引擎并返回 en/zh 翻译器
func InstallGin() (*ut.UniversalTranslator, error) {
	customValidator := NewCustomValidator()
	binding.Validator = customValidator

	validate, ok := customValidator.Engine().(*validator.Validate)
	if !ok {
		return ut.New(en.New(), en.New(), zh.New()), nil
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := RegisterOn(validate); err != nil {
		return nil, err
	}

	uni := ut.New(en.New(), en.New(), zh.New())

	zhTran, _ := uni.GetTranslator("zh")
	enTran, _ := uni.GetTranslator("en")

	if err := zh_translations.RegisterDefaultTranslations(validate, zhTran); err != nil {
		return nil, err
	}
	if err := en_translations.RegisterDefaultTranslations(validate, enTran); err != nil {
		return nil, err
	}

	return uni, nil
}
