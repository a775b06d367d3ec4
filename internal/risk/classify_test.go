package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func TestClassifyProbability(t *testing.T) {
	assert.Equal(t, LevelHigh, ClassifyProbability(fptr(0.75)))
	assert.Equal(t, LevelMedium, ClassifyProbability(fptr(0.55)))
	assert.Equal(t, LevelLow, ClassifyProbability(fptr(0.1)))
	assert.Equal(t, LevelUnknown, ClassifyProbability(nil))
}

func TestClassifyProbabilityBoundaries(t *testing.T) {
	assert.Equal(t, LevelHigh, ClassifyProbability(fptr(0.7)))
	assert.Equal(t, LevelMedium, ClassifyProbability(fptr(0.4)))
	assert.Equal(t, LevelLow, ClassifyProbability(fptr(0.3999)))
	assert.Equal(t, LevelLow, ClassifyProbability(fptr(0)))
	assert.Equal(t, LevelHigh, ClassifyProbability(fptr(1)))
}

func TestValidLevel(t *testing.T) {
	for _, v := range []string{"High", "Medium", "Low", "Unknown"} {
		assert.True(t, ValidLevel(v), v)
	}
	assert.False(t, ValidLevel("high"))
	assert.False(t, ValidLevel(""))
}
