package risk

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// The model is trained offline (scikit-learn StandardScaler + binary
// logistic regression) and its parameters are exported to JSON at training
// time. Loading them here keeps inference dependency-free while the Scorer
// still treats both artifacts as opaque interfaces.

// StandardScaler applies the column-wise (x - mean) / scale transform the
// model was fitted with.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (s *StandardScaler) Transform(vec []float64) ([]float64, error) {
	if len(vec) != len(s.Mean) || len(vec) != len(s.Scale) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.Mean), len(vec))
	}

	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = (v - s.Mean[i]) / s.Scale[i]
	}
	return out, nil
}

// LogisticModel is a binary logistic regression over scaled features.
// Class 1 ("will not cancel") is the positive class, matching the training
// labels.
type LogisticModel struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

func (m *LogisticModel) decision(vec []float64) (float64, error) {
	if len(vec) != len(m.Coef) {
		return 0, fmt.Errorf("model expects %d features, got %d", len(m.Coef), len(vec))
	}

	z := m.Intercept
	for i, v := range vec {
		z += m.Coef[i] * v
	}
	return z, nil
}

func (m *LogisticModel) Predict(vec []float64) (int, error) {
	z, err := m.decision(vec)
	if err != nil {
		return 0, err
	}
	if sigmoid(z) >= 0.5 {
		return ClassNotCancel, nil
	}
	return ClassCancel, nil
}

// PredictProba returns the probability pair (p0, p1).
func (m *LogisticModel) PredictProba(vec []float64) ([2]float64, error) {
	z, err := m.decision(vec)
	if err != nil {
		return [2]float64{}, err
	}
	p1 := sigmoid(z)
	return [2]float64{1 - p1, p1}, nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// LoadScaler reads a StandardScaler from a JSON artifact file.
func LoadScaler(path string) (*StandardScaler, error) {
	var s StandardScaler
	if err := loadJSON(path, &s); err != nil {
		return nil, err
	}
	if len(s.Mean) != VectorLen || len(s.Scale) != VectorLen {
		return nil, fmt.Errorf("scaler artifact %s has %d/%d parameters, want %d", path, len(s.Mean), len(s.Scale), VectorLen)
	}
	for i, v := range s.Scale {
		if v == 0 {
			return nil, fmt.Errorf("scaler artifact %s has zero scale at column %d", path, i)
		}
	}
	return &s, nil
}

// LoadModel reads a LogisticModel from a JSON artifact file.
func LoadModel(path string) (*LogisticModel, error) {
	var m LogisticModel
	if err := loadJSON(path, &m); err != nil {
		return nil, err
	}
	if len(m.Coef) != VectorLen {
		return nil, fmt.Errorf("model artifact %s has %d coefficients, want %d", path, len(m.Coef), VectorLen)
	}
	return &m, nil
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read artifact %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	return nil
}
