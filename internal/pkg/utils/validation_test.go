package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanNIK(t *testing.T) {
	assert.Equal(t, "3174051509900001", CleanNIK(" 3174.0515-0990 0001 "))
}

func TestIsValidNIK(t *testing.T) {
	tests := []struct {
		name string
		nik  string
		want bool
	}{
		{"valid male", "3174051509900001", true},
		{"valid female day offset", "3174055509900001", true},
		{"too short", "317405150990001", false},
		{"non numeric", "3174O51509900001", false},
		{"zero province", "0074051509900001", false},
		{"zero district", "3174001509900001", false},
		{"day out of range", "3174053909900001", false},
		{"female day out of range", "3174057509900001", false},
		{"month out of range", "3174051513900001", false},
		{"zero serial", "3174051509900000", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidNIK(tc.nik))
		})
	}
}
