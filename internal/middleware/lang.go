package middleware

import (
	"strings"

	"github.com/haierkeys/fast-note-service/pkg/app"
	"github.com/haierkeys/fast-note-service/pkg/code"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// translator locale per response language
var translatorLocales = map[string]string{
	"en":    "en",
	"zh_cn": "zh",
}

// LangWithTranslator 创建带翻译器的语言中间件（支持依赖注入）
// The language comes from ?lang=, the lang header, then Accept-Language; it is stored per request.
func LangWithTranslator(uni *ut.UniversalTranslator) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := requestLang(c)

		c.Set(app.LangKey, lang)

		trans, found := uni.GetTranslator(translatorLocales[lang])
		if !found {
			trans, _ = uni.GetTranslator("en")
		}
		c.Set(app.TranslatorKey, trans)

		c.Next()
	}
}

func requestLang(c *gin.Context) string {
	candidates := []string{c.Query("lang"), c.GetHeader("lang")}
	if al := c.GetHeader("Accept-Language"); al != "" {
		// "zh-CN,zh;q=0.9,en;q=0.8" -> "zh-CN"
		first := strings.SplitN(al, ",", 2)[0]
		candidates = append(candidates, strings.SplitN(first, ";", 2)[0])
	}
	for _, s := range candidates {
		if l := code.NormalizeLang(s); l != "" {
			return l
		}
	}
	return code.GetGlobalDefaultLang()
}
