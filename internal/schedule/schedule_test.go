package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoulx24/rdb-retention/internal/timespec"
)

func mustEvent(t *testing.T, spec string) timespec.Event {
	t.Helper()
	ev, err := timespec.ParseEvent(spec)
	require.NoError(t, err)
	return ev
}

func utc(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func assertStrictlyDescending(t *testing.T, ts []time.Time) {
	t.Helper()
	for i := 1; i < len(ts); i++ {
		require.True(t, ts[i].Before(ts[i-1]), "index %d: %s not before %s", i, ts[i], ts[i-1])
	}
}

func TestGenerateSuppressesFutureTimesOnFirstDay(t *testing.T) {
	// Wednesday 2024-01-03 12:15
	now := utc(2024, 1, 3, 12, 15)
	got := GenerateEvent(AllWeekdays, mustEvent(t, "2,22:30"), 1, now)

	require.NotEmpty(t, got)
	assert.Equal(t, utc(2024, 1, 3, 2, 30), got[0], "22:30 today has not happened yet")
	assert.Equal(t, utc(2024, 1, 2, 22, 30), got[1])
	assert.Equal(t, utc(2024, 1, 2, 2, 30), got[2])
	// 7 days * 2 times, minus the suppressed 22:30 on day 0
	assert.Len(t, got, 13)
	assertStrictlyDescending(t, got)
}

func TestGenerateIncludesTimeEqualToNow(t *testing.T) {
	now := utc(2024, 1, 3, 22, 30)
	got := GenerateEvent(AllWeekdays, mustEvent(t, "22:30"), 1, now)
	require.NotEmpty(t, got)
	assert.Equal(t, now, got[0])
}

func TestGenerateHonoursWeekdays(t *testing.T) {
	days, err := ParseWeekdays("mon..fri")
	require.NoError(t, err)

	now := utc(2024, 1, 7, 23, 59) // Sunday
	got := GenerateEvent(days, mustEvent(t, "8..17:00/30"), 2, now)

	assert.Len(t, got, 2*5*10*2)
	for _, ts := range got {
		assert.NotEqual(t, time.Saturday, ts.Weekday())
		assert.NotEqual(t, time.Sunday, ts.Weekday())
		assert.GreaterOrEqual(t, ts.Hour(), 8)
		assert.LessOrEqual(t, ts.Hour(), 17)
		assert.Contains(t, []int{0, 30}, ts.Minute())
	}
	assert.Equal(t, utc(2024, 1, 5, 17, 30), got[0])
	assert.Equal(t, utc(2023, 12, 25, 8, 0), got[len(got)-1])
	assertStrictlyDescending(t, got)
}

func TestGenerateBoundedByWeeks(t *testing.T) {
	now := utc(2024, 3, 10, 12, 0)
	ev := mustEvent(t, "0:0")
	got := GenerateEvent(AllWeekdays, ev, 3, now)
	assert.Len(t, got, 21)
	assert.Equal(t, utc(2024, 2, 19, 0, 0), got[len(got)-1])
}

func TestGenerateEmptyInputs(t *testing.T) {
	now := utc(2024, 1, 1, 0, 0)
	ev := mustEvent(t, "1:1")
	assert.Empty(t, GenerateEvent(AllWeekdays, ev, 0, now))
	assert.Empty(t, GenerateEvent(Weekdays{}, ev, 4, now))
	assert.Empty(t, Generate(AllWeekdays, 0, ev.Minutes, 4, now))
}

func TestGenerateIsRestartable(t *testing.T) {
	now := utc(2024, 5, 17, 9, 41)
	ev := mustEvent(t, "*/6:15")
	assert.Equal(t, GenerateEvent(AllWeekdays, ev, 2, now), GenerateEvent(AllWeekdays, ev, 2, now))
}

func TestGenerateKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2024, 1, 3, 1, 0, 0, 0, loc)
	got := GenerateEvent(AllWeekdays, mustEvent(t, "0:30"), 1, now)
	require.NotEmpty(t, got)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 30, 0, 0, loc), got[0])
	assert.Equal(t, loc, got[0].Location())
}

func berlin(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("no tzdata: %v", err)
	}
	return loc
}

func TestGenerateSkipsClockTimesInSpringForwardGap(t *testing.T) {
	loc := berlin(t)
	// clocks jump from 02:00 to 03:00 on 2024-03-31
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, loc)
	got := GenerateEvent(AllWeekdays, mustEvent(t, "2,3:30"), 1, now)

	assertStrictlyDescending(t, got)
	require.Len(t, got, 1+6*2)
	assert.Equal(t, time.Date(2024, 3, 31, 3, 30, 0, 0, loc), got[0])
	assert.Equal(t, time.Date(2024, 3, 30, 3, 30, 0, 0, loc), got[1])
	assert.Equal(t, time.Date(2024, 3, 30, 2, 30, 0, 0, loc), got[2])
}

func TestGenerateEmitsRepeatedClockTimeOnce(t *testing.T) {
	loc := berlin(t)
	// 02:30 happens twice on 2024-10-27
	now := time.Date(2024, 10, 27, 12, 0, 0, 0, loc)
	got := GenerateEvent(AllWeekdays, mustEvent(t, "2:30"), 1, now)

	assertStrictlyDescending(t, got)
	assert.Len(t, got, 7)
}
