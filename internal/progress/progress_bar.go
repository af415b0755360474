// SPDX-License-Identifier: Apache-2.0

package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

type Bar interface {
	Add(int) error
	Close() error
}

type ProgressBar struct {
	*progressbar.ProgressBar
}

func NewBar(max int, opts ...progressbar.Option) *ProgressBar {
	return &ProgressBar{
		ProgressBar: progressbar.NewOptions(max, opts...),
	}
}

// NewRowsBar returns a bar counting processed rows out of the total on input,
// rendered on stderr so it doesn't interleave with the status lines.
func NewRowsBar(total int, description string) *ProgressBar {
	return NewRowsBarWithWriter(os.Stderr, total, description)
}

func NewRowsBarWithWriter(w io.Writer, total int, description string) *ProgressBar {
	return NewBar(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("rows"),
		progressbar.OptionShowIts(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription(description),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
