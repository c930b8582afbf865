package payoff

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidParameter = errors.New("invalid option parameter")

// Digital is a cash-or-nothing call paying one unit when the underlying
// finishes above the barrier. Fields are fixed at construction.
type Digital struct {
	spot     float64
	strike   float64
	barrier  float64
	vol      float64
	maturity float64
	rate     float64
}

// NewDigital builds the contract from raw inputs. No validation is done here,
// see Validate.
func NewDigital(spot, strike, barrier, vol, maturity, rate float64) Digital {
	return Digital{
		spot:     spot,
		strike:   strike,
		barrier:  barrier,
		vol:      vol,
		maturity: maturity,
		rate:     rate,
	}
}

func (d Digital) Spot() float64     { return d.spot }
func (d Digital) Barrier() float64  { return d.barrier }
func (d Digital) Vol() float64      { return d.vol }
func (d Digital) Maturity() float64 { return d.maturity }
func (d Digital) Rate() float64     { return d.rate }

// Strike is carried for compatibility with the console inputs. No pricing
// method reads it.
func (d Digital) Strike() float64 { return d.strike }

// Payout of the contract for a terminal price.
func (d Digital) Payout(terminal float64) float64 {
	if terminal > d.barrier {
		return 1.0
	}
	return 0.0
}

// Discount factor exp(-rT) over the full horizon.
func (d Digital) Discount() float64 {
	return math.Exp(-d.rate * d.maturity)
}

// Validate checks the ranges a caller must respect before pricing.
func (d Digital) Validate() error {
	fields := []struct {
		name  string
		value float64
		ok    func(float64) bool
		want  string
	}{
		{"underlying_price", d.spot, positive, "> 0"},
		{"strike_price", d.strike, positive, "> 0"},
		{"barrier_price", d.barrier, positive, "> 0"},
		{"implied_volatility", d.vol, nonNegative, ">= 0"},
		{"time_to_maturity", d.maturity, nonNegative, ">= 0"},
		{"risk_free_rate", d.rate, finite, "finite"},
	}
	for _, f := range fields {
		if !finite(f.value) || !f.ok(f.value) {
			return fmt.Errorf("%w: %s must be %s, got %v", ErrInvalidParameter, f.name, f.want, f.value)
		}
	}
	// exp(-rT) must stay representable or a zero payout prices as 0·Inf
	if df := d.Discount(); !finite(df) || df == 0 {
		return fmt.Errorf("%w: risk_free_rate*time_to_maturity out of range, got %v", ErrInvalidParameter, d.rate*d.maturity)
	}
	return nil
}

func (d Digital) String() string {
	return fmt.Sprintf("S=%v K=%v B=%v sigma=%v T=%v r=%v", d.spot, d.strike, d.barrier, d.vol, d.maturity, d.rate)
}

func finite(x float64) bool      { return !math.IsNaN(x) && !math.IsInf(x, 0) }
func positive(x float64) bool    { return x > 0 }
func nonNegative(x float64) bool { return x >= 0 }
