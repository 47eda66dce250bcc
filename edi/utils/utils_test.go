package utils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		defaultVal int
		expect     int
	}{
		{"set", "12", 5, 12},
		{"unset", "", 5, 5},
		{"not a number", "twelve", 5, 5},
		{"negative", "-3", 5, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(sub *testing.T) {
			key := "EDI_UTILS_TEST_VAR"
			if tt.value == "" {
				os.Unsetenv(key)
			} else {
				os.Setenv(key, tt.value)
				defer os.Unsetenv(key)
			}
			assert.Equal(sub, tt.expect, GetEnvInt(key, tt.defaultVal))
		})
	}
}
