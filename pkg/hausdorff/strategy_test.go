package hausdorff

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChooseStrategy(t *testing.T) {
	tests := []struct {
		origins, candidates int
		want                Strategy
	}{
		{10, 100, Naive},
		{100, 10, Naive},
		{31, 1000, Naive},
		{60, 60, Naive},
		{32, 125, Naive}, // product exactly 4000
		{32, 126, Indexed},
		{63, 64, Indexed},
		{70, 70, Indexed},
		{32, 32, Naive},
		{0, 1_000_000, Naive},
		{math.MaxInt, math.MaxInt, Indexed},
	}

	for _, tt := range tests {
		got := ChooseStrategy(tt.origins, tt.candidates)
		assert.Equal(t, tt.want, got, "ChooseStrategy(%d, %d)", tt.origins, tt.candidates)
	}
}

func TestSaturatingMul(t *testing.T) {
	assert.Equal(t, 4000, saturatingMul(32, 125))
	assert.Equal(t, 0, saturatingMul(0, math.MaxInt))
	assert.Equal(t, math.MaxInt, saturatingMul(math.MaxInt/2, 3))
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "naive", Naive.String())
	assert.Equal(t, "indexed", Indexed.String())
}
