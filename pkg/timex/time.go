// Package timex 提供数据库与 JSON 友好的时间类型
package timex

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Layout JSON output layout
// Layout JSON 输出格式
const Layout = time.RFC3339Nano

// Time wraps time.Time for gorm columns and JSON fields
// Time 包装 time.Time，用于 gorm 字段与 JSON 输出
type Time time.Time

// Now returns the current time
// Now 返回当前时间
func Now() Time {
	return Time(time.Now())
}

// Time converts back to time.Time
func (t Time) Time() time.Time {
	return time.Time(t)
}

func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}

func (t Time) String() string {
	return time.Time(t).Format(Layout)
}

// MarshalJSON 零值输出 null
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + time.Time(t).Format(Layout) + `"`), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*t = Time(time.Time{})
		return nil
	}
	parsed, err := time.Parse(`"`+Layout+`"`, s)
	if err != nil {
		return err
	}
	*t = Time(parsed)
	return nil
}

// GormDataType lets each dialect pick its own timestamp column type
// GormDataType 由各数据库方言决定具体的时间列类型
func (Time) GormDataType() string {
	return "time"
}

// Value implements driver.Valuer
func (t Time) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return time.Time(t), nil
}

// Scan implements sql.Scanner
func (t *Time) Scan(v interface{}) error {
	switch value := v.(type) {
	case nil:
		*t = Time(time.Time{})
	case time.Time:
		*t = Time(value)
	case string:
		return t.parse(value)
	case []byte:
		return t.parse(string(value))
	default:
		return fmt.Errorf("timex: can not convert %T to Time", v)
	}
	return nil
}

var scanLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (t *Time) parse(s string) error {
	for _, layout := range scanLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = Time(parsed)
			return nil
		}
	}
	return fmt.Errorf("timex: can not parse %q", s)
}
