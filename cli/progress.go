package cli

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// progressBar counts simulated trials on w. The bar clears itself once all
// trials are in so only the price line remains on stdout.
func progressBar(trials int, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		trials,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Monte Carlo"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
