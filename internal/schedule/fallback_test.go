package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestFallback_SingleDay(t *testing.T) {
	records := Fallback(day("2024-01-01"), day("2024-01-01"), "X")

	require.Len(t, records, 1)
	assert.Equal(t, "2024-01-01", records[0].Date)
	assert.True(t, strings.HasSuffix(records[0].Task, "related to X"), "task = %q", records[0].Task)
}

func TestFallback_CappedAtPoolLength(t *testing.T) {
	records := Fallback(day("2024-01-01"), day("2024-01-30"), "Go")

	require.Len(t, records, 8, "30-day range is capped at the pool length")
	assert.Equal(t, "2024-01-01", records[0].Date)
	assert.Equal(t, "2024-01-08", records[7].Date)
}

func TestFallback_ConsecutiveDates(t *testing.T) {
	records := Fallback(day("2024-02-27"), day("2024-03-02"), "SQL")

	require.Len(t, records, 5)
	want := []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}
	for i, rec := range records {
		assert.Equal(t, want[i], rec.Date)
		assert.True(t, strings.HasSuffix(rec.Task, " related to SQL"))
	}
}

func TestFallback_Deterministic(t *testing.T) {
	a := Fallback(day("2024-01-01"), day("2024-01-04"), "Rust")
	b := Fallback(day("2024-01-01"), day("2024-01-04"), "Rust")
	assert.Equal(t, a, b)
}

func TestFallback_InvertedRange(t *testing.T) {
	assert.Empty(t, Fallback(day("2024-01-05"), day("2024-01-01"), "X"))
}
