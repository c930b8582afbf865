// Package bsm prices the digital call in closed form under Black-Scholes-Merton.
package bsm

import (
	"errors"
	"fmt"
	"math"

	"github.com/banachtech/digicall/payoff"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	ErrDegenerate     = errors.New("closed form is undefined for these parameters")
	ErrUnknownFormula = errors.New("unknown closed-form formula")
)

// Formula selects how d2 is computed.
type Formula string

const (
	// FormulaLogRatio is the textbook cash-or-nothing formula
	// d2 = (ln(S/B) + (r - σ²/2)T) / σ√T.
	FormulaLogRatio Formula = "log-ratio"
	// FormulaReference reproduces the legacy console formula bit for bit:
	// d1 = (ln S / ln B + (r + σ²/2)T) / σ√T, d2 = d1 - σ√T.
	// Dividing the logarithms has no financial meaning; keep it for parity
	// testing only.
	FormulaReference Formula = "reference"
)

func ParseFormula(s string) (Formula, error) {
	switch Formula(s) {
	case FormulaLogRatio, FormulaReference:
		return Formula(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormula, s)
}

// Pricer evaluates exp(-rT)·CDF(d2). The zero value uses FormulaLogRatio and
// the standard normal CDF.
type Pricer struct {
	Formula Formula
	CDF     func(float64) float64
}

// Price with the zero Pricer.
func Price(opt payoff.Digital) (float64, error) {
	return Pricer{}.Price(opt)
}

func (p Pricer) Price(opt payoff.Digital) (float64, error) {
	d2, err := p.d2(opt)
	if err != nil {
		return math.NaN(), err
	}
	cdf := p.CDF
	if cdf == nil {
		cdf = distuv.UnitNormal.CDF
	}
	return math.Exp(-opt.Rate()*opt.Maturity()) * cdf(d2), nil
}

func (p Pricer) d2(opt payoff.Digital) (float64, error) {
	s, b := opt.Spot(), opt.Barrier()
	r, v, t := opt.Rate(), opt.Vol(), opt.Maturity()

	x := v * math.Sqrt(t)
	if !(x > 0) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("%w: sigma*sqrt(T) = %v", ErrDegenerate, x)
	}
	if !(s > 0) || !(b > 0) {
		return 0, fmt.Errorf("%w: log of S=%v or B=%v", ErrDegenerate, s, b)
	}

	switch p.Formula {
	case "", FormulaLogRatio:
		return (math.Log(s/b) + (r-0.5*v*v)*t) / x, nil
	case FormulaReference:
		lb := math.Log(b)
		if lb == 0 {
			return 0, fmt.Errorf("%w: ln B = 0", ErrDegenerate)
		}
		d1 := (math.Log(s)/lb + (r+0.5*v*v)*t) / x
		return d1 - x, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormula, string(p.Formula))
}
