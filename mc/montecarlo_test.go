package mc

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/banachtech/digicall/payoff"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

type tally struct {
	n int64
}

func (c *tally) Add(n int) error {
	atomic.AddInt64(&c.n, int64(n))
	return nil
}

func atTheMoney() payoff.Digital {
	return payoff.NewDigital(100, 100, 100, 0.2, 1, 0.05)
}

func shock(t *testing.T, law Law, seed uint64) Shock {
	t.Helper()
	z, err := NewShock(law, rand.NewSource(seed))
	require.NoError(t, err)
	return z
}

func TestMonteCarloBounds(t *testing.T) {
	opt := atTheMoney()
	for seed := uint64(1); seed <= 5; seed++ {
		for _, law := range []Law{LawUniform, LawNormal} {
			p, err := MonteCarlo(opt, 5000, shock(t, law, seed))
			require.NoError(t, err)
			require.GreaterOrEqual(t, p, 0.0)
			require.LessOrEqual(t, p, opt.Discount())
		}
	}
}

func TestMonteCarloConvergence(t *testing.T) {
	opt := atTheMoney()
	df := math.Exp(-0.05)

	type testCases struct {
		name string
		law  Law
		want float64
	}

	for _, tc := range []testCases{
		{
			// S_T > B  <=>  z > -0.15, uniform on [-3, 3]
			name: "UNIFORM",
			law:  LawUniform,
			want: (3.0 + 0.15) / 6.0 * df,
		},
		{
			name: "NORMAL",
			law:  LawNormal,
			want: distuv.UnitNormal.CDF(0.15) * df,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			est, err := RunMonteCarlo(opt, DefaultTrials, shock(t, tc.law, 42), nil)
			require.NoError(t, err)
			require.InDelta(t, tc.want, est.Price, 0.01)
			require.Equal(t, DefaultTrials, est.Samples)
			require.InDelta(t, est.Probability*df, est.Price, 1e-15)
			require.Greater(t, est.StdErr, 0.0)
			require.Less(t, est.StdErr, 0.002)
		})
	}
}

func TestMonteCarloSeeded(t *testing.T) {
	opt := atTheMoney()
	a, err := MonteCarlo(opt, 10000, shock(t, LawUniform, 7))
	require.NoError(t, err)
	b, err := MonteCarlo(opt, 10000, shock(t, LawUniform, 7))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestMonteCarloDegenerate(t *testing.T) {
	// no diffusion and no time: the terminal price is the spot
	opt := payoff.NewDigital(100, 100, 99, 0.2, 0, 0.05)
	p, err := MonteCarlo(opt, 1000, shock(t, LawUniform, 1))
	require.NoError(t, err)
	require.Equal(t, 1.0, p)

	opt = payoff.NewDigital(100, 100, 101, 0, 1, 0)
	p, err = MonteCarlo(opt, 1000, shock(t, LawUniform, 1))
	require.NoError(t, err)
	require.Equal(t, 0.0, p)
}

func TestMonteCarloZeroTrials(t *testing.T) {
	for _, n := range []int{0, -5} {
		p, err := MonteCarlo(atTheMoney(), n, shock(t, LawUniform, 1))
		require.True(t, errors.Is(err, ErrNonPositiveCount))
		require.True(t, math.IsNaN(p))
	}
}

func TestMonteCarloProgress(t *testing.T) {
	c := &tally{}
	_, err := RunMonteCarlo(atTheMoney(), 2500, shock(t, LawUniform, 1), c)
	require.NoError(t, err)
	require.Equal(t, int64(2500), c.n)
}

func TestParallelMonteCarlo(t *testing.T) {
	opt := atTheMoney()
	want := distuv.UnitNormal.CDF(0.15) * opt.Discount()

	c := &tally{}
	a, err := ParallelMonteCarlo(opt, DefaultTrials, 4, 42, LawNormal, c)
	require.NoError(t, err)
	require.InDelta(t, want, a.Price, 0.01)
	require.Equal(t, int64(DefaultTrials), c.n)

	b, err := ParallelMonteCarlo(opt, DefaultTrials, 4, 42, LawNormal, nil)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestParallelMonteCarloMoreWorkersThanTrials(t *testing.T) {
	est, err := ParallelMonteCarlo(atTheMoney(), 3, 8, 1, LawUniform, nil)
	require.NoError(t, err)
	require.Equal(t, 3, est.Samples)
}

func TestParallelMonteCarloErrors(t *testing.T) {
	_, err := ParallelMonteCarlo(atTheMoney(), 0, 2, 1, LawUniform, nil)
	require.True(t, errors.Is(err, ErrNonPositiveCount))

	_, err = ParallelMonteCarlo(atTheMoney(), 10, 0, 1, LawUniform, nil)
	require.True(t, errors.Is(err, ErrNonPositiveCount))

	_, err = ParallelMonteCarlo(atTheMoney(), 10, 2, 1, Law("cauchy"), nil)
	require.True(t, errors.Is(err, ErrUnknownLaw))
}

func TestWorkerSeed(t *testing.T) {
	const workers = 8
	for s := uint64(1); s <= 64; s++ {
		seen := map[uint64]bool{}
		for w := 0; w < workers; w++ {
			seen[workerSeed(s, w)] = true
		}
		require.Len(t, seen, workers)
		// neighbouring request seeds must not reuse a worker stream
		for w := 0; w < workers; w++ {
			require.False(t, seen[workerSeed(s+1, w)], "seed %d worker %d", s+1, w)
		}
	}
}
