package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTime_UnixMethods(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 500, time.UTC)
	tt := Time(now)

	assert.Equal(t, now.Unix(), tt.Unix())
	assert.Equal(t, now.UnixMilli(), tt.UnixMilli())
	assert.Equal(t, now.UnixMicro(), tt.UnixMicro())
	assert.Equal(t, now.UnixNano(), tt.UnixNano())
	assert.True(t, tt.Time().Equal(now))
}

func TestTime_JSON(t *testing.T) {
	tt := Time(time.Date(2024, 1, 1, 12, 0, 0, 123456789, time.UTC))

	data, err := json.Marshal(tt)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-01T12:00:00.123456789Z"`, string(data))

	var back Time
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Time().Equal(tt.Time()))

	// 零值输出 null
	data, err = json.Marshal(Time{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	require.NoError(t, json.Unmarshal([]byte(`""`), &back))
	assert.True(t, back.IsZero())
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &back))
}
