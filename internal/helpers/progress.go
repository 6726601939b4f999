package helpers

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
)

type ProgressBar struct {
	Set   func(int)
	Add   func(int)
	Close func()
}

func CreateProgressBar(total int, label string) ProgressBar {
	p := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetVisibility(IsTerminal(os.Stderr)),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	return ProgressBar{
		func(i int) {
			_ = p.Set(i)
		}, func(i int) {
			_ = p.Add(i)
		}, func() {
			_ = p.Finish()
		},
	}
}

func unitForDuration(d time.Duration) time.Duration {
	if d < time.Microsecond {
		return time.Nanosecond
	}
	if d < time.Millisecond {
		return time.Microsecond
	}
	if d < time.Second {
		return time.Millisecond
	}
	if d < time.Minute {
		return time.Second
	}
	return time.Minute
}

// RateString formats a count and its throughput, eg "8,902 in 12ms @ 741,833/s".
func RateString(count int, elapsed time.Duration) string {
	perSecond := int64(0)
	if elapsed > 0 {
		perSecond = int64(float64(count) / elapsed.Seconds())
	}
	return fmt.Sprintf("%v in %v @ %v/s",
		humanize.Comma(int64(count)), elapsed.Round(unitForDuration(elapsed)), humanize.Comma(perSecond))
}
