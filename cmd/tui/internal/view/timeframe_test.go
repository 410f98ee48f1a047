package view

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeframeToDateRange(t *testing.T) {
	now := time.Date(2024, time.May, 17, 15, 4, 0, 0, time.Local)

	tests := []struct {
		tf    Timeframe
		start time.Time
		end   time.Time
	}{
		{TimeframeThisMonth, date(2024, 5, 1), date(2024, 5, 31)},
		{TimeframeLastMonth, date(2024, 4, 1), date(2024, 4, 30)},
		{TimeframeThisQuarter, date(2024, 4, 1), date(2024, 6, 30)},
		{TimeframeThisYear, date(2024, 1, 1), date(2024, 12, 31)},
		{TimeframeLastYear, date(2023, 1, 1), date(2023, 12, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.tf.String(), func(t *testing.T) {
			start, end := timeframeToDateRange(tt.tf, now)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestTimeframeToDateRange_LastMonthInJanuary(t *testing.T) {
	start, end := timeframeToDateRange(TimeframeLastMonth, time.Date(2024, time.January, 9, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, date(2023, 12, 1), start)
	assert.Equal(t, date(2023, 12, 31), end)
}

func TestTimeframePicker_SelectPreset(t *testing.T) {
	p := NewTimeframePicker(TimeframeThisMonth)
	p.now = func() time.Time { return time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC) }

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(TimeframeSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, date(2024, 2, 1), msg.Start)
	assert.Equal(t, date(2024, 2, 29), msg.End)
	assert.True(t, p.IsSelecting())
}
