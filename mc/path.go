package mc

import (
	"fmt"
	"math"

	"github.com/banachtech/digicall/payoff"
	"gonum.org/v1/gonum/stat"
)

// Path simulates one price path of opt's underlying over steps equal
// increments of its maturity. The returned slice has steps+1 points and
// starts at spot.
func Path(opt payoff.Digital, steps int, z Shock) ([]float64, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w: steps = %d", ErrNonPositiveCount, steps)
	}
	g := newGBM(opt.Rate(), opt.Vol(), opt.Maturity()/float64(steps))
	p := make([]float64, steps+1)
	p[0] = opt.Spot()
	for i := 1; i <= steps; i++ {
		p[i] = g.evolve(p[i-1], z.Rand())
	}
	return p, nil
}

// SinglePath prices opt from a single simulated path: the result is the
// discounted payout of one sample, so it is either 0 or exp(-rT). This is
// the method labelled "FEM" on the console; it is not a PDE solver.
func SinglePath(opt payoff.Digital, steps int, z Shock) (float64, error) {
	p, err := Path(opt, steps, z)
	if err != nil {
		return math.NaN(), err
	}
	return opt.Payout(p[steps]) * opt.Discount(), nil
}

// AveragePaths averages the payout of paths independent single-path draws.
func AveragePaths(opt payoff.Digital, steps, paths int, z Shock) (Estimate, error) {
	if paths <= 0 {
		return Estimate{}, fmt.Errorf("%w: paths = %d", ErrNonPositiveCount, paths)
	}
	payouts := make([]float64, paths)
	for i := range payouts {
		p, err := Path(opt, steps, z)
		if err != nil {
			return Estimate{}, err
		}
		payouts[i] = opt.Payout(p[steps])
	}

	df := opt.Discount()
	est := Estimate{Samples: paths}
	if paths == 1 {
		// no dispersion can be measured from one sample
		est.Probability = payouts[0]
	} else {
		mean, std := stat.MeanStdDev(payouts, nil)
		est.Probability = mean
		est.StdErr = std / math.Sqrt(float64(paths)) * df
	}
	est.Price = est.Probability * df
	return est, nil
}
