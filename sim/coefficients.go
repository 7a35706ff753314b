package sim

import "fmt"

// Coefficients weights the four utility components of a seat. Weights are
// non-negative and normalized so they sum to 1, which keeps every total
// utility inside [0,1].
type Coefficients struct {
	Position      float64
	Friendship    float64
	Sociability   float64
	Accessibility float64
}

// NewCoefficients normalizes a raw [position, friendship, sociability,
// accessibility] weight vector. An all-zero vector is not an error: it
// returns zero coefficients and random=true, switching the simulation to
// uniform-random seat choice.
func NewCoefficients(raw [4]float64) (coefs Coefficients, random bool, err error) {
	sum := 0.0
	for i, v := range raw {
		if v < 0 {
			return Coefficients{}, false, fmt.Errorf("%w: utility coefficient %d is negative (%v)", ErrConfiguration, i, v)
		}
		sum += v
	}
	if sum == 0 {
		return Coefficients{}, true, nil
	}
	return Coefficients{
		Position:      raw[0] / sum,
		Friendship:    raw[1] / sum,
		Sociability:   raw[2] / sum,
		Accessibility: raw[3] / sum,
	}, false, nil
}
