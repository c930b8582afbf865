package mc

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

var ErrUnknownLaw = errors.New("unknown shock law")

// Half-width of the interval sampled by LawUniform.
const shockBound = 3.0

// Shock draws the standardised variate that drives one GBM increment.
// distuv.Uniform and distuv.Normal both satisfy it.
type Shock interface {
	Rand() float64
	CDF(x float64) float64
}

// Law names the sampling distribution of the shock.
type Law string

const (
	// LawUniform samples uniformly on [-3, 3]. It is the default and
	// reproduces the legacy console prices.
	LawUniform Law = "uniform"
	// LawNormal samples a true standard normal.
	LawNormal Law = "normal"
)

func ParseLaw(s string) (Law, error) {
	switch Law(s) {
	case LawUniform, LawNormal:
		return Law(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLaw, s)
}

// NewShock returns a shock of the given law drawing from src. Callers running
// concurrently must each pass their own source.
func NewShock(law Law, src rand.Source) (Shock, error) {
	switch law {
	case LawUniform:
		return distuv.Uniform{Min: -shockBound, Max: shockBound, Src: src}, nil
	case LawNormal:
		return distuv.Normal{Mu: 0.0, Sigma: 1.0, Src: src}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLaw, string(law))
}

// CDF of the law, usable as the closed-form kernel so that the analytic price
// is the large-sample limit of the simulation under the same law.
func (l Law) CDF(x float64) float64 {
	if l == LawUniform {
		return distuv.Uniform{Min: -shockBound, Max: shockBound}.CDF(x)
	}
	return distuv.UnitNormal.CDF(x)
}
