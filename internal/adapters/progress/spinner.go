package progress

import (
	"time"

	"github.com/briandowns/spinner"

	"github.com/trebuchet-org/katapult/internal/usecase"
)

// SpinnerSink shows progress on a terminal spinner.
type SpinnerSink struct {
	spinner *spinner.Spinner
}

// NewSpinnerSink creates a spinner-based progress sink.
func NewSpinnerSink() *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.HideCursor = false
	return &SpinnerSink{spinner: s}
}

// OnProgress updates the spinner message, starting it on the first spinner
// event.
func (s *SpinnerSink) OnProgress(event usecase.ProgressEvent) {
	if !event.Spinner {
		return
	}
	s.spinner.Suffix = " " + event.Message
	if !s.spinner.Active() {
		s.spinner.Start()
	}
}

// Done stops the spinner.
func (s *SpinnerSink) Done() {
	if s.spinner.Active() {
		s.spinner.Stop()
	}
}

var _ usecase.ProgressSink = (*SpinnerSink)(nil)
