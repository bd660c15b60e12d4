package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		expected string
	}{
		{name: "zero", input: 0, expected: "0"},
		{name: "hundreds", input: 999, expected: "999"},
		{name: "exactly 1000", input: 1000, expected: "1.0K"},
		{name: "thousands", input: 1500, expected: "1.5K"},
		{name: "hundreds of thousands", input: 999999, expected: "1000.0K"},
		{name: "exactly 1 million", input: 1000000, expected: "1.0M"},
		{name: "millions", input: 2500000, expected: "2.5M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatNumber(tt.input))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{name: "zero duration", input: 0, expected: "0m"},
		{name: "minutes only", input: 5 * time.Minute, expected: "5m"},
		{name: "exactly 1 hour", input: 60 * time.Minute, expected: "1h 0m"},
		{name: "1 hour 30 minutes", input: 90 * time.Minute, expected: "1h 30m"},
		{name: "25 hours 45 minutes", input: 25*time.Hour + 45*time.Minute, expected: "25h 45m"},
		{name: "seconds get rounded down", input: time.Hour + 30*time.Minute + 45*time.Second, expected: "1h 30m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.input))
		})
	}
}
