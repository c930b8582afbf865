package mc

import "math"

// gbm holds the log-drift and diffusion of one geometric Brownian motion
// increment of length dt under the risk-neutral measure.
type gbm struct {
	drift     float64
	diffusion float64
}

func newGBM(rate, vol, dt float64) gbm {
	return gbm{
		drift:     (rate - 0.5*vol*vol) * dt,
		diffusion: vol * math.Sqrt(dt),
	}
}

// evolve moves price s forward by one increment with shock z.
func (g gbm) evolve(s, z float64) float64 {
	return s * math.Exp(g.drift+g.diffusion*z)
}
