package bsm

import (
	"errors"
	"math"
	"testing"

	"github.com/banachtech/digicall/payoff"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestPriceLogRatio(t *testing.T) {
	opt := payoff.NewDigital(100, 100, 100, 0.2, 1, 0.05)

	p, err := Price(opt)
	require.NoError(t, err)
	// d2 = (0 + 0.03) / 0.2
	require.InDelta(t, math.Exp(-0.05)*distuv.UnitNormal.CDF(0.15), p, 1e-12)
	require.InDelta(t, 0.532325, p, 1e-5)
}

func TestPriceReference(t *testing.T) {
	opt := payoff.NewDigital(100, 100, 100, 0.2, 1, 0.05)

	p, err := Pricer{Formula: FormulaReference}.Price(opt)
	require.NoError(t, err)

	d1 := (math.Log(100)/math.Log(100) + (0.05+0.5*0.2*0.2)*1) / (0.2 * math.Sqrt(1))
	d2 := d1 - 0.2*math.Sqrt(1)
	require.InDelta(t, math.Exp(-0.05*1)*distuv.UnitNormal.CDF(d2), p, 1e-12)
	require.InDelta(t, math.Exp(-0.05), p, 1e-6)
}

func TestPriceDeterministic(t *testing.T) {
	opt := payoff.NewDigital(105, 100, 98, 0.35, 0.75, 0.02)
	for _, f := range []Formula{FormulaLogRatio, FormulaReference} {
		a, err := Pricer{Formula: f}.Price(opt)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			b, err := Pricer{Formula: f}.Price(opt)
			require.NoError(t, err)
			require.Equal(t, math.Float64bits(a), math.Float64bits(b))
		}
	}
}

func TestPriceBounds(t *testing.T) {
	for _, b := range []float64{50, 90, 100, 110, 200} {
		opt := payoff.NewDigital(100, 100, b, 0.3, 2, 0.04)
		p, err := Price(opt)
		require.NoError(t, err)
		require.GreaterOrEqual(t, p, 0.0)
		require.LessOrEqual(t, p, opt.Discount())
	}
}

func TestPriceMonotoneInBarrier(t *testing.T) {
	prev := math.Inf(1)
	for _, b := range []float64{60, 80, 100, 120, 140} {
		p, err := Price(payoff.NewDigital(100, 100, b, 0.25, 1, 0.01))
		require.NoError(t, err)
		require.Less(t, p, prev)
		prev = p
	}
}

func TestPriceCustomCDF(t *testing.T) {
	opt := payoff.NewDigital(100, 100, 100, 0.2, 1, 0.05)
	uniform := distuv.Uniform{Min: -3, Max: 3}

	p, err := Pricer{CDF: uniform.CDF}.Price(opt)
	require.NoError(t, err)
	require.InDelta(t, 0.525*math.Exp(-0.05), p, 1e-12)
}

func TestPriceDegenerate(t *testing.T) {
	type testCases struct {
		name    string
		opt     payoff.Digital
		formula Formula
	}

	for _, tc := range []testCases{
		{name: "ZERO_VOL", opt: payoff.NewDigital(100, 100, 100, 0, 1, 0.05)},
		{name: "ZERO_MATURITY", opt: payoff.NewDigital(100, 100, 100, 0.2, 0, 0.05)},
		{name: "ZERO_SPOT", opt: payoff.NewDigital(0, 100, 100, 0.2, 1, 0.05)},
		{name: "NEGATIVE_BARRIER", opt: payoff.NewDigital(100, 100, -1, 0.2, 1, 0.05)},
		{name: "REFERENCE_UNIT_BARRIER", opt: payoff.NewDigital(100, 100, 1, 0.2, 1, 0.05), formula: FormulaReference},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Pricer{Formula: tc.formula}.Price(tc.opt)
			require.True(t, errors.Is(err, ErrDegenerate))
			require.True(t, math.IsNaN(p))
		})
	}
}

func TestParseFormula(t *testing.T) {
	f, err := ParseFormula("reference")
	require.NoError(t, err)
	require.Equal(t, FormulaReference, f)

	_, err = ParseFormula("exact")
	require.True(t, errors.Is(err, ErrUnknownFormula))

	_, err = Pricer{Formula: "exact"}.Price(payoff.NewDigital(100, 100, 100, 0.2, 1, 0.05))
	require.True(t, errors.Is(err, ErrUnknownFormula))
}
