package risk

import "log"

// Predicted classes. The training data labels a booking 0 when it was
// cancelled and 1 when it was honoured; keep this inverted mapping exact.
const (
	ClassCancel    = 0
	ClassNotCancel = 1
)

// Fallback probabilities used when the model cannot produce one.
const (
	// DefaultProbability is stored when scoring is fully unavailable.
	DefaultProbability = 0.5
	// FallbackCancelProbability is stored when the class is predicted but
	// the probability output is unavailable.
	FallbackCancelProbability    = 0.7
	FallbackNotCancelProbability = 0.3
)

// Scaler normalizes a raw feature vector the way the model was trained.
type Scaler interface {
	Transform(vec []float64) ([]float64, error)
}

// Classifier predicts a cancellation class for a scaled feature vector.
type Classifier interface {
	Predict(vec []float64) (int, error)
}

// ProbabilityClassifier is optionally implemented by classifiers that can
// also report the per-class probability pair (p0, p1).
type ProbabilityClassifier interface {
	PredictProba(vec []float64) ([2]float64, error)
}

// Assessment is the outcome of scoring one booking request.
type Assessment struct {
	// Probability of cancellation in [0,1]. Always defined; fallback
	// constants apply when the model cannot produce one.
	Probability float64
	WillCancel  bool
	// Degraded reports that a fallback was used anywhere in scoring.
	Degraded bool
}

// Scorer wraps the scaler and classifier artifacts. Either may be nil, in
// which case every Score call returns the default assessment. Immutable
// after construction and safe for concurrent use.
type Scorer struct {
	scaler     Scaler
	classifier Classifier
}

// NewScorer creates a Scorer. Pass nil artifacts to run in degraded mode.
func NewScorer(scaler Scaler, classifier Classifier) *Scorer {
	return &Scorer{scaler: scaler, classifier: classifier}
}

// Score produces an Assessment for an encoded feature vector. It never
// fails: any scaling or prediction error degrades to the default
// assessment so that a booking can always be completed.
func (s *Scorer) Score(vec []float64) Assessment {
	if s == nil || s.scaler == nil || s.classifier == nil {
		return defaultAssessment()
	}

	scaled, err := s.scaler.Transform(vec)
	if err != nil {
		log.Printf("risk: scaler transform failed, using default assessment: %v", err)
		return defaultAssessment()
	}

	class, err := s.classifier.Predict(scaled)
	if err != nil {
		log.Printf("risk: prediction failed, using default assessment: %v", err)
		return defaultAssessment()
	}

	willCancel := class == ClassCancel

	a := Assessment{WillCancel: willCancel}

	pc, ok := s.classifier.(ProbabilityClassifier)
	if !ok {
		a.Probability = fallbackProbability(willCancel)
		a.Degraded = true
		return a
	}

	probs, err := pc.PredictProba(scaled)
	if err != nil {
		log.Printf("risk: probability output failed, using per-class fallback: %v", err)
		a.Probability = fallbackProbability(willCancel)
		a.Degraded = true
		return a
	}

	// The pair is (p0, p1). When the predicted class is "will cancel" the
	// cancellation probability is p0; otherwise it is 1 - p1. Do not
	// collapse this to p1: the two branches read different elements.
	if willCancel {
		a.Probability = probs[0]
	} else {
		a.Probability = 1 - probs[1]
	}

	return a
}

func defaultAssessment() Assessment {
	return Assessment{
		Probability: DefaultProbability,
		WillCancel:  false,
		Degraded:    true,
	}
}

func fallbackProbability(willCancel bool) float64 {
	if willCancel {
		return FallbackCancelProbability
	}
	return FallbackNotCancelProbability
}
