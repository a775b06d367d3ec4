package risk

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestStandardScalerTransform(t *testing.T) {
	s := &StandardScaler{
		Mean:  []float64{1, 2},
		Scale: []float64{2, 4},
	}

	out, err := s.Transform([]float64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0.5}, out)

	_, err = s.Transform([]float64{1})
	assert.Error(t, err, "length mismatch must be rejected")
}

func TestLogisticModelPredict(t *testing.T) {
	// Single active coefficient: z = 2*x0 - 1.
	coef := repeat(0, VectorLen)
	coef[0] = 2
	m := &LogisticModel{Coef: coef, Intercept: -1}

	vec := repeat(0, VectorLen)

	// z = -1 -> p1 < 0.5 -> class 0 (will cancel)
	class, err := m.Predict(vec)
	require.NoError(t, err)
	assert.Equal(t, ClassCancel, class)

	// z = 1 -> p1 > 0.5 -> class 1 (will not cancel)
	vec[0] = 1
	class, err = m.Predict(vec)
	require.NoError(t, err)
	assert.Equal(t, ClassNotCancel, class)
}

func TestLogisticModelPredictProba(t *testing.T) {
	coef := repeat(0, VectorLen)
	m := &LogisticModel{Coef: coef, Intercept: 1}

	probs, err := m.PredictProba(repeat(0, VectorLen))
	require.NoError(t, err)

	p1 := 1 / (1 + math.Exp(-1))
	assert.InDelta(t, p1, probs[1], 1e-12)
	assert.InDelta(t, 1-p1, probs[0], 1e-12)
	assert.InDelta(t, 1, probs[0]+probs[1], 1e-12)
}

func TestLoadScaler(t *testing.T) {
	path := writeArtifact(t, "scaler.json", StandardScaler{
		Mean:  repeat(0, VectorLen),
		Scale: repeat(1, VectorLen),
	})

	s, err := LoadScaler(path)
	require.NoError(t, err)
	assert.Len(t, s.Mean, VectorLen)

	// Wrong parameter count.
	bad := writeArtifact(t, "short.json", StandardScaler{Mean: []float64{0}, Scale: []float64{1}})
	_, err = LoadScaler(bad)
	assert.Error(t, err)

	// Zero scale would divide by zero at inference time.
	zeroScale := repeat(1, VectorLen)
	zeroScale[5] = 0
	zs := writeArtifact(t, "zero.json", StandardScaler{Mean: repeat(0, VectorLen), Scale: zeroScale})
	_, err = LoadScaler(zs)
	assert.Error(t, err)

	_, err = LoadScaler(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadModel(t *testing.T) {
	path := writeArtifact(t, "model.json", LogisticModel{
		Coef:      repeat(0.1, VectorLen),
		Intercept: 0.5,
	})

	m, err := LoadModel(path)
	require.NoError(t, err)
	assert.Len(t, m.Coef, VectorLen)
	assert.Equal(t, 0.5, m.Intercept)

	bad := writeArtifact(t, "short.json", LogisticModel{Coef: []float64{1, 2}})
	_, err = LoadModel(bad)
	assert.Error(t, err)
}

func TestLoadedArtifactsWorkWithScorer(t *testing.T) {
	scaler := &StandardScaler{Mean: repeat(0, VectorLen), Scale: repeat(1, VectorLen)}
	// Strongly negative intercept: p1 ~ 0 -> every prediction is "will cancel".
	model := &LogisticModel{Coef: repeat(0, VectorLen), Intercept: -10}

	s := NewScorer(scaler, model)
	a := s.Score(repeat(0, VectorLen))

	assert.True(t, a.WillCancel)
	assert.False(t, a.Degraded)
	assert.InDelta(t, 1, a.Probability, 1e-3, "p0 close to 1 for a strong cancel signal")
}
