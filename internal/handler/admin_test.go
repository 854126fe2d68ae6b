package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSayArgs(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		expectedID    int64
		expectedText  string
		expectedError bool
	}{
		{
			name:         "valid",
			args:         []string{"123", "привет", "из", "поддержки"},
			expectedID:   123,
			expectedText: "привет из поддержки",
		},
		{
			name:          "missing text",
			args:          []string{"123"},
			expectedError: true,
		},
		{
			name:          "non-numeric id",
			args:          []string{"abc", "привет"},
			expectedError: true,
		},
		{
			name:          "no args",
			args:          nil,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, text, err := parseSayArgs(tt.args)

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedID, id)
			assert.Equal(t, tt.expectedText, text)
		})
	}
}

func TestParseScheduleArgs(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		expectedWhen  string
		expectedID    int64
		expectedText  string
		expectedError bool
	}{
		{
			name:         "valid",
			args:         []string{"31.12.2026", "18:00", "456", "с", "новым", "годом"},
			expectedWhen: "31.12.2026 18:00",
			expectedID:   456,
			expectedText: "с новым годом",
		},
		{
			name:          "too few args",
			args:          []string{"31.12.2026", "18:00", "456"},
			expectedError: true,
		},
		{
			name:          "non-numeric id",
			args:          []string{"31.12.2026", "18:00", "завтра", "текст"},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			when, id, text, err := parseScheduleArgs(tt.args)

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedWhen, when)
			assert.Equal(t, tt.expectedID, id)
			assert.Equal(t, tt.expectedText, text)
		})
	}
}
