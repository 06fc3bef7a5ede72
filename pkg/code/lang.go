package code

import (
	"errors"
	"strings"
	"sync/atomic"
)

// lang type, used to store English and Chinese text
// lang 类型，用来存储英文和中文文本
type lang struct {
	en    string // English // 英文
	zh_cn string // Chinese // 中文
}

const FALLBACK_LNG = "en"

var supportedLanguages = []string{"en", "zh_cn"}

// process wide default language, overridden per request by Message
// 进程级默认语言，请求级别使用 Message 指定
// package level initializers in common.go read it before init runs, so the zero value means FALLBACK_LNG
// common.go 的包级变量初始化早于 init，零值按 FALLBACK_LNG 处理
var lng atomic.Value

// GetMessage returns the message in the global default language
// GetMessage 返回全局默认语言的消息
func (l lang) GetMessage() string {
	return l.Message(GetGlobalDefaultLang())
}

// Message returns the message in the given language, falling back to English
// Message 返回指定语言的消息，缺失时回退为英文
func (l lang) Message(language string) string {
	switch NormalizeLang(language) {
	case "zh_cn":
		if l.zh_cn != "" {
			return l.zh_cn
		}
	}
	return l.en
}

// NormalizeLang maps "zh-CN", "zh", "ZH_cn" to "zh_cn"; unknown values map to ""
// NormalizeLang 规范化语言标识，未知语言返回空字符串
func NormalizeLang(language string) string {
	language = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(language), "-", "_"))
	if language == "zh" {
		language = "zh_cn"
	}
	for _, l := range supportedLanguages {
		if l == language {
			return l
		}
	}
	return ""
}

// GetSupportedLanguages returns all languages supported by the lang type
// GetSupportedLanguages 返回支持的全部语言
func GetSupportedLanguages() []string {
	return append([]string{}, supportedLanguages...)
}

// SetGlobalDefaultLang sets the global default language
// 设置全局默认语言
func SetGlobalDefaultLang(language string) error {
	if l := NormalizeLang(language); l != "" {
		lng.Store(l)
		return nil
	}
	lng.Store(FALLBACK_LNG)
	return errors.New("unsupported language type, set defaulting to " + FALLBACK_LNG)
}

// GetGlobalDefaultLang gets the global default language
// 获取全局默认语言
func GetGlobalDefaultLang() string {
	if s, ok := lng.Load().(string); ok {
		return s
	}
	return FALLBACK_LNG
}
