// Package convert 结构体之间及结构体与 map 之间的转换
package convert

import (
	"time"

	"github.com/haierkeys/fast-note-service/pkg/timex"

	"github.com/bytedance/sonic"
	"github.com/jinzhu/copier"
)

// timeConverters map domain time.Time fields onto timex.Time DTO fields and back
var timeConverters = []copier.TypeConverter{
	{
		SrcType: time.Time{},
		DstType: timex.Time{},
		Fn: func(src interface{}) (interface{}, error) {
			return timex.Time(src.(time.Time).UTC()), nil
		},
	},
	{
		SrcType: timex.Time{},
		DstType: time.Time{},
		Fn: func(src interface{}) (interface{}, error) {
			return src.(timex.Time).Time().UTC(), nil
		},
	},
}

// StructAssign copies fields with the same name from src into dst
// StructAssign 把 src 与 dst 同名字段的值复制到 dst 中
func StructAssign(src any, dst any) error {
	return copier.CopyWithOption(dst, src, copier.Option{
		IgnoreEmpty: false,
		DeepCopy:    true,
		Converters:  timeConverters,
	})
}

// StructToMap converts param into a map using its json tags
// StructToMap 结构体转 map（按 json tag）
func StructToMap(param any) (map[string]any, error) {
	b, err := sonic.Marshal(param)
	if err != nil {
		return nil, err
	}
	data := make(map[string]any)
	if err := sonic.Unmarshal(b, &data); err != nil {
		return nil, err
	}
	return data, nil
}
