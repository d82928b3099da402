package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alekseyp/fintrack/internal/report"
)

func TestParseMonth(t *testing.T) {
	type testCase struct {
		name      string
		input     string
		wantYear  int
		wantMonth time.Month
		wantErr   bool
	}

	tests := []testCase{
		{name: "January", input: "01.2025", wantYear: 2025, wantMonth: time.January},
		{name: "December", input: "12.2024", wantYear: 2024, wantMonth: time.December},
		{name: "SurroundingWhitespace", input: "  07.2025 ", wantYear: 2025, wantMonth: time.July},
		{name: "MissingZeroPad", input: "1.2025", wantYear: 2025, wantMonth: time.January},
		{name: "MonthOutOfRange", input: "13.2025", wantErr: true},
		{name: "WrongSeparator", input: "01-2025", wantErr: true},
		{name: "YearMonthOrder", input: "2025.01", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, month, err := report.ParseMonth(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantYear, year)
			assert.Equal(t, tt.wantMonth, month)
		})
	}
}
