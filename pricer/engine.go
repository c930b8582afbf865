// Package pricer dispatches a digital call to one of the three estimators.
package pricer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/banachtech/digicall/bsm"
	"github.com/banachtech/digicall/config"
	"github.com/banachtech/digicall/logging"
	"github.com/banachtech/digicall/mc"
	"github.com/banachtech/digicall/payoff"
	"github.com/banachtech/digicall/util"
	"github.com/rs/zerolog"
)

var ErrInvalidMethod = errors.New("invalid pricing method")

// Method is the console label of a pricing method. Matching is case-sensitive.
type Method string

const (
	MethodMonteCarlo Method = "Monte Carlo"
	// MethodSinglePath keeps the legacy "FEM" label; it is a
	// single simulated path, not a finite-element solver.
	MethodSinglePath Method = "FEM"
	MethodClosedForm Method = "BSM"
)

var Methods = []Method{MethodMonteCarlo, MethodSinglePath, MethodClosedForm}

func ParseMethod(s string) (Method, error) {
	for _, m := range Methods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMethod, s)
}

// Quote is a price together with how it was obtained.
type Quote struct {
	Method  Method        `json:"method"`
	Price   float64       `json:"price"`
	StdErr  float64       `json:"std_err"`
	Samples int           `json:"samples"`
	Seed    uint64        `json:"seed,omitempty"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// Engine prices digital calls. It holds no per-request state and is safe for
// concurrent use.
type Engine struct {
	cfg      config.Pricing
	law      mc.Law
	closed   bsm.Pricer
	logger   zerolog.Logger
	progress func(total int) mc.Counter
}

// Option configures an Engine.
type Option func(*Engine)

// WithProgress reports Monte Carlo progress to the counter returned by fn.
func WithProgress(fn func(total int) mc.Counter) Option {
	return func(e *Engine) { e.progress = fn }
}

func New(cfg config.Pricing, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	law, err := mc.ParseLaw(cfg.Shock)
	if err != nil {
		return nil, err
	}
	formula, err := bsm.ParseFormula(cfg.Formula)
	if err != nil {
		return nil, err
	}
	kernel, err := mc.ParseLaw(cfg.ClosedFormLaw)
	if err != nil {
		return nil, err
	}
	for _, n := range []int{cfg.Trials, cfg.Steps, cfg.Paths, cfg.Workers} {
		if n <= 0 {
			return nil, fmt.Errorf("%w: %+v", mc.ErrNonPositiveCount, cfg)
		}
	}

	e := &Engine{
		cfg:    cfg,
		law:    law,
		closed: bsm.Pricer{Formula: formula, CDF: kernel.CDF},
		logger: logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Price returns the price of opt under method m.
func (e *Engine) Price(opt payoff.Digital, m Method) (float64, error) {
	q, err := e.Quote(opt, m)
	if err != nil {
		return math.NaN(), err
	}
	return q.Price, nil
}

// Quote validates opt, then runs the estimator for m with a fresh random
// source.
func (e *Engine) Quote(opt payoff.Digital, m Method) (Quote, error) {
	logger := logging.WithMethod(e.logger, string(m))
	if _, err := ParseMethod(string(m)); err != nil {
		return Quote{}, err
	}
	if err := opt.Validate(); err != nil {
		return Quote{}, err
	}

	start := time.Now()
	q, err := e.dispatch(opt, m)
	if err != nil {
		logger.Debug().Err(err).Stringer("option", opt).Msg("pricing failed")
		return Quote{}, err
	}
	q.Method = m
	q.Elapsed = time.Since(start)

	logger.Debug().
		Stringer("option", opt).
		Float64("price", q.Price).
		Float64("std_err", q.StdErr).
		Int("samples", q.Samples).
		Uint64("seed", q.Seed).
		Dur("elapsed", q.Elapsed).
		Msg("priced")
	return q, nil
}

func (e *Engine) dispatch(opt payoff.Digital, m Method) (Quote, error) {
	switch m {
	case MethodMonteCarlo:
		return e.monteCarlo(opt)
	case MethodSinglePath:
		return e.singlePath(opt)
	case MethodClosedForm:
		p, err := e.closed.Price(opt)
		if err != nil {
			return Quote{}, err
		}
		return Quote{Price: p}, nil
	}
	return Quote{}, fmt.Errorf("%w: %q", ErrInvalidMethod, string(m))
}

func (e *Engine) monteCarlo(opt payoff.Digital) (Quote, error) {
	seed := util.Seed(e.cfg.Seed)
	var c mc.Counter
	if e.progress != nil {
		c = e.progress(e.cfg.Trials)
	}

	var est mc.Estimate
	var err error
	if e.cfg.Workers > 1 {
		est, err = mc.ParallelMonteCarlo(opt, e.cfg.Trials, e.cfg.Workers, seed, e.law, c)
	} else {
		z, serr := mc.NewShock(e.law, util.NewSource(seed))
		if serr != nil {
			return Quote{}, serr
		}
		est, err = mc.RunMonteCarlo(opt, e.cfg.Trials, z, c)
	}
	if err != nil {
		return Quote{}, err
	}
	return quote(est, seed), nil
}

func (e *Engine) singlePath(opt payoff.Digital) (Quote, error) {
	seed := util.Seed(e.cfg.Seed)
	z, err := mc.NewShock(e.law, util.NewSource(seed))
	if err != nil {
		return Quote{}, err
	}

	if e.cfg.Paths == 1 {
		p, err := mc.SinglePath(opt, e.cfg.Steps, z)
		if err != nil {
			return Quote{}, err
		}
		return Quote{Price: p, Samples: 1, Seed: seed}, nil
	}

	est, err := mc.AveragePaths(opt, e.cfg.Steps, e.cfg.Paths, z)
	if err != nil {
		return Quote{}, err
	}
	return quote(est, seed), nil
}

func quote(est mc.Estimate, seed uint64) Quote {
	return Quote{
		Price:   est.Price,
		StdErr:  est.StdErr,
		Samples: est.Samples,
		Seed:    seed,
	}
}
