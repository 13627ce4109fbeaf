package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello", "%hello%"},
		{"", "%%"},
		{"50%", "%50!%%"},
		{"snake_case", "%snake!_case%"},
		{"wow!", "%wow!!%"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsPattern(tt.in))
		})
	}
}
