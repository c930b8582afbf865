package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/banachtech/digicall/payoff"
)

var ErrParse = errors.New("please enter a valid number")

// Prompter asks questions on out and reads one answer per line from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Line prints label and returns the next trimmed input line.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprintln(p.out, label)
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(s), nil
}

// Float prints label and parses the answer as a float64.
func (p *Prompter) Float(label string) (float64, error) {
	s, err := p.Line(label)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrParse, s)
	}
	return v, nil
}

// Digital asks for the six contract inputs in console order.
func (p *Prompter) Digital() (payoff.Digital, error) {
	labels := []string{
		"Enter the underlying price:",
		"Enter the strike price:",
		"Enter the barrier price:",
		"Enter the implied volatility (as a decimal):",
		"Enter the time to maturity (in years):",
		"Enter the risk-free rate (as a decimal):",
	}
	v := make([]float64, len(labels))
	for i, label := range labels {
		x, err := p.Float(label)
		if err != nil {
			return payoff.Digital{}, err
		}
		v[i] = x
	}
	return payoff.NewDigital(v[0], v[1], v[2], v[3], v[4], v[5]), nil
}
