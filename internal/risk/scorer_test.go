package risk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubScaler struct {
	err error
}

func (s stubScaler) Transform(vec []float64) ([]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return vec, nil
}

// stubClassifier predicts a fixed class without probability output.
type stubClassifier struct {
	class int
	err   error
}

func (c stubClassifier) Predict(vec []float64) (int, error) {
	return c.class, c.err
}

// stubProbaClassifier additionally exposes a fixed probability pair.
type stubProbaClassifier struct {
	stubClassifier
	probs    [2]float64
	probaErr error
}

func (c stubProbaClassifier) PredictProba(vec []float64) ([2]float64, error) {
	if c.probaErr != nil {
		return [2]float64{}, c.probaErr
	}
	return c.probs, nil
}

func testVector() []float64 {
	return make([]float64, VectorLen)
}

func TestScoreNoArtifactsReturnsDefault(t *testing.T) {
	for _, s := range []*Scorer{
		nil,
		NewScorer(nil, nil),
		NewScorer(stubScaler{}, nil),
		NewScorer(nil, stubClassifier{}),
	} {
		a := s.Score(testVector())
		assert.Equal(t, DefaultProbability, a.Probability)
		assert.False(t, a.WillCancel)
		assert.True(t, a.Degraded)
	}
}

func TestScoreCancelUsesProbabilityOfClassZero(t *testing.T) {
	s := NewScorer(stubScaler{}, stubProbaClassifier{
		stubClassifier: stubClassifier{class: ClassCancel},
		probs:          [2]float64{0.82, 0.18},
	})

	a := s.Score(testVector())
	assert.True(t, a.WillCancel)
	assert.InDelta(t, 0.82, a.Probability, 1e-9)
	assert.False(t, a.Degraded)
}

func TestScoreNotCancelUsesComplementOfClassOne(t *testing.T) {
	s := NewScorer(stubScaler{}, stubProbaClassifier{
		stubClassifier: stubClassifier{class: ClassNotCancel},
		probs:          [2]float64{0.3, 0.7},
	})

	a := s.Score(testVector())
	assert.False(t, a.WillCancel)
	assert.InDelta(t, 0.3, a.Probability, 1e-9)
	assert.False(t, a.Degraded)
}

func TestScoreProbabilityUnavailableFallsBackPerClass(t *testing.T) {
	// Classifier without probability output at all.
	s := NewScorer(stubScaler{}, stubClassifier{class: ClassCancel})
	a := s.Score(testVector())
	assert.True(t, a.WillCancel)
	assert.Equal(t, FallbackCancelProbability, a.Probability)
	assert.True(t, a.Degraded)

	// Probability output present but failing.
	s = NewScorer(stubScaler{}, stubProbaClassifier{
		stubClassifier: stubClassifier{class: ClassNotCancel},
		probaErr:       errors.New("proba unsupported"),
	})
	a = s.Score(testVector())
	assert.False(t, a.WillCancel)
	assert.Equal(t, FallbackNotCancelProbability, a.Probability)
	assert.True(t, a.Degraded)
}

func TestScoreTransformFailureDegrades(t *testing.T) {
	s := NewScorer(stubScaler{err: errors.New("bad vector")}, stubClassifier{class: ClassCancel})

	a := s.Score(testVector())
	assert.Equal(t, DefaultProbability, a.Probability)
	assert.False(t, a.WillCancel)
	assert.True(t, a.Degraded)
}

func TestScorePredictFailureDegrades(t *testing.T) {
	s := NewScorer(stubScaler{}, stubClassifier{err: errors.New("model broken")})

	a := s.Score(testVector())
	assert.Equal(t, DefaultProbability, a.Probability)
	assert.True(t, a.Degraded)
}
