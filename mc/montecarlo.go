package mc

import (
	"errors"
	"fmt"
	"math"

	"github.com/banachtech/digicall/payoff"
	"golang.org/x/exp/rand"
)

var ErrNonPositiveCount = errors.New("count must be positive")

const (
	DefaultTrials = 100000
	DefaultSteps  = 100

	// trials between two progress reports
	batch = 1000
)

// Counter receives simulation progress. *progressbar.ProgressBar satisfies it.
type Counter interface {
	Add(int) error
}

// Estimate of a simulated price.
type Estimate struct {
	Price       float64 `json:"price"`
	Probability float64 `json:"probability"`
	StdErr      float64 `json:"std_err"`
	Samples     int     `json:"samples"`
}

// MonteCarlo prices opt by averaging the discounted digital payout over n
// terminal prices drawn in one step from spot to maturity.
func MonteCarlo(opt payoff.Digital, n int, z Shock) (float64, error) {
	est, err := RunMonteCarlo(opt, n, z, nil)
	if err != nil {
		return math.NaN(), err
	}
	return est.Price, nil
}

// RunMonteCarlo is MonteCarlo with the full estimate and optional progress.
func RunMonteCarlo(opt payoff.Digital, n int, z Shock, c Counter) (Estimate, error) {
	if n <= 0 {
		return Estimate{}, fmt.Errorf("%w: trials = %d", ErrNonPositiveCount, n)
	}
	return estimate(opt, hits(opt, n, z, c), n), nil
}

// ParallelMonteCarlo splits n trials over workers goroutines. Worker i draws
// from its own source seeded with workerSeed(seed, i), so the result only
// depends on (seed, workers).
func ParallelMonteCarlo(opt payoff.Digital, n, workers int, seed uint64, law Law, c Counter) (Estimate, error) {
	if n <= 0 {
		return Estimate{}, fmt.Errorf("%w: trials = %d", ErrNonPositiveCount, n)
	}
	if workers <= 0 {
		return Estimate{}, fmt.Errorf("%w: workers = %d", ErrNonPositiveCount, workers)
	}
	if _, err := ParseLaw(string(law)); err != nil {
		return Estimate{}, err
	}
	if workers > n {
		workers = n
	}

	ch := make(chan int, workers)
	errCh := make(chan error, workers)
	defer close(ch)
	defer close(errCh)

	for w := 0; w < workers; w++ {
		trials := n / workers
		if w < n%workers {
			trials++
		}
		go func(w, trials int) {
			z, err := NewShock(law, rand.NewSource(workerSeed(seed, w)))
			if err != nil {
				ch <- 0
				errCh <- err
				return
			}
			ch <- hits(opt, trials, z, c)
			errCh <- nil
		}(w, trials)
	}

	total := 0
	var firstErr error
	for w := 0; w < workers; w++ {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
		total += <-ch
	}
	if firstErr != nil {
		return Estimate{}, firstErr
	}
	return estimate(opt, total, n), nil
}

// workerSeed spreads worker streams with the golden-ratio multiplier so
// requests seeded s and s+1 share no worker source.
func workerSeed(seed uint64, w int) uint64 {
	return seed ^ (uint64(w)+1)*0x9E3779B97F4A7C15
}

// hits counts the trials finishing above the barrier.
func hits(opt payoff.Digital, n int, z Shock, c Counter) int {
	g := newGBM(opt.Rate(), opt.Vol(), opt.Maturity())
	s := opt.Spot()
	count := 0
	for i := 1; i <= n; i++ {
		if opt.Payout(g.evolve(s, z.Rand())) > 0 {
			count++
		}
		if c != nil && i%batch == 0 {
			_ = c.Add(batch)
		}
	}
	if c != nil && n%batch != 0 {
		_ = c.Add(n % batch)
	}
	return count
}

func estimate(opt payoff.Digital, hits, n int) Estimate {
	df := opt.Discount()
	p := float64(hits) / float64(n)
	return Estimate{
		Price:       p * df,
		Probability: p,
		StdErr:      math.Sqrt(p*(1-p)/float64(n)) * df,
		Samples:     n,
	}
}
