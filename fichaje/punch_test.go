package fichaje

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestampRFC3339(t *testing.T) {
	got, err := ParseTimestamp("2024-03-04T09:00:00+01:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC), got.UTC())
}

func TestParseTimestampZonelessIsUTC(t *testing.T) {
	got, err := ParseTimestamp("2024-03-04T09:00:00")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC), got)
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "2024-03-04", "hoy", "2024-13-40T09:00:00"} {
		_, err := ParseTimestamp(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	h, m, err := ParseTimeOfDay("9:30")
	require.NoError(t, err)
	assert.Equal(t, 9, h)
	assert.Equal(t, 30, m)

	for _, bad := range []string{"", "930", "24:00", "12:60", "ab:cd"} {
		_, _, err := ParseTimeOfDay(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestDayKeyRespectsLocation(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	p := Punch{Kind: Entrada, Timestamp: time.Date(2024, 7, 1, 22, 30, 0, 0, time.UTC)}

	assert.Equal(t, "2024-07-01", p.DayKey(time.UTC))
	assert.Equal(t, "2024-07-02", p.DayKey(madrid))
}
