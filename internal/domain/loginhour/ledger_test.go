package loginhour

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func at(min int) time.Time { return t0.Add(time.Duration(min) * time.Minute) }

func TestBreaks_StartEnd(t *testing.T) {
	var b Breaks

	_, err := b.End(at(0))
	assert.ErrorIs(t, err, ErrNoBreaksRecorded)

	require.NoError(t, b.Start(at(0), nil))
	assert.True(t, b.OnBreak())
	assert.ErrorIs(t, b.Start(at(5), nil), ErrBreakAlreadyOpen)
	assert.Len(t, b, 1)

	ended, err := b.End(at(40))
	require.NoError(t, err)
	assert.Equal(t, at(40), *ended.End)
	assert.False(t, b.OnBreak())

	before := append(Breaks(nil), b...)
	_, err = b.End(at(50))
	assert.ErrorIs(t, err, ErrNoActiveBreak)
	assert.Equal(t, before, b)
}

func TestBreaks_TotalIsLive(t *testing.T) {
	var b Breaks
	require.NoError(t, b.Start(at(0), nil))
	_, err := b.End(at(40))
	require.NoError(t, err)
	require.NoError(t, b.Start(at(60), nil))

	assert.Equal(t, 40*time.Minute, b.Total(at(60)))
	assert.Equal(t, 75*time.Minute, b.Total(at(95)))
	assert.Equal(t, 80*time.Minute, b.Total(at(100)))
}

func TestLoginHour_Worked(t *testing.T) {
	l := LoginHour{LoginTime: at(0)}
	require.NoError(t, l.Breaks.Start(at(60), nil))
	_, err := l.Breaks.End(at(90))
	require.NoError(t, err)

	assert.Equal(t, 90*time.Minute, l.Worked(at(120)))
	assert.Equal(t, 120*time.Minute, l.Elapsed(at(120)))

	logout := at(180)
	l.LogoutTime = &logout
	assert.Equal(t, 150*time.Minute, l.Worked(at(600)))
}

func TestLoginHour_WorkedCanGoNegative(t *testing.T) {
	l := LoginHour{
		LoginTime: at(0),
		Breaks: Breaks{
			{Start: at(-60), End: ptr(at(10))},
		},
	}
	assert.Equal(t, -60*time.Minute, l.Worked(at(10)))
}

func TestFormatHMS(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatHMS(0))
	assert.Equal(t, "01:15:07", FormatHMS(75*time.Minute+7*time.Second+900*time.Millisecond))
	assert.Equal(t, "26:00:00", FormatHMS(26*time.Hour))
	assert.Equal(t, "00:00:00", FormatHMS(-5*time.Minute))
}

func TestHours(t *testing.T) {
	assert.Equal(t, 1.5, Hours(90*time.Minute))
	assert.Equal(t, 0.33, Hours(20*time.Minute))
	assert.Equal(t, -0.5, Hours(-30*time.Minute))
}

func TestBreaks_ScanValue(t *testing.T) {
	var b Breaks
	require.NoError(t, b.Start(at(0), intPtr(15)))

	v, err := b.Value()
	require.NoError(t, err)

	var out Breaks
	require.NoError(t, out.Scan(v))
	require.Len(t, out, 1)
	assert.True(t, out[0].Start.Equal(at(0)))
	assert.Nil(t, out[0].End)
	assert.Equal(t, 15, *out[0].RequestedDuration)

	require.NoError(t, out.Scan(nil))
	assert.Empty(t, out)
	assert.Error(t, out.Scan(42))

	raw, err := Breaks(nil).Value()
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw.([]byte)))

	_, err = json.Marshal(out)
	require.NoError(t, err)
}

func ptr(t time.Time) *time.Time { return &t }

func intPtr(i int) *int { return &i }
