package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestAgeParts(t *testing.T) {
	tests := []struct {
		name      string
		dob       time.Time
		now       time.Time
		wantYears int
		wantWeeks int
	}{
		{"on birthday", date(2018, 6, 15), date(2026, 6, 15), 8, 0},
		{"day before birthday", date(2018, 6, 15), date(2026, 6, 14), 7, 52},
		{"four weeks past birthday", date(2018, 6, 15), date(2026, 7, 13), 8, 4},
		{"newborn", date(2026, 6, 1), date(2026, 6, 20), 0, 2},
		{"dob in the future", date(2030, 1, 1), date(2026, 6, 15), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			years, weeks := AgeParts(tt.dob, tt.now)
			assert.Equal(t, tt.wantYears, years)
			assert.Equal(t, tt.wantWeeks, weeks)
		})
	}
}

func TestAgeYears(t *testing.T) {
	assert.Equal(t, 7, AgeYears(date(2018, 6, 15), date(2026, 6, 14)))
	assert.Equal(t, 8, AgeYears(date(2018, 6, 15), date(2026, 6, 15)))
}
