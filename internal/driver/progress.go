package driver

import "time"

// Stage is the step a manifest is currently in.
type Stage string

const (
	StageRead   Stage = "read"
	StageSort   Stage = "sort"
	StageVerify Stage = "verify"
	StageWrite  Stage = "write"
)

// Status is the state of a manifest within the run.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Outcome is the verdict attached to a StatusDone event.
type Outcome string

const (
	OutcomeSorted      Outcome = "sorted"
	OutcomeRewritten   Outcome = "rewritten"
	OutcomeChanged     Outcome = "changed" // print mode: output differs from the file
	OutcomeUnsorted    Outcome = "unsorted"
	OutcomeUnformatted Outcome = "unformatted"
)

// Event reports progress of one manifest. File is the manifest path.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Outcome Outcome
	Err     error
	Elapsed time.Duration
}

// outcomeOf classifies a finished result.
func outcomeOf(r *Result, mode Mode) Outcome {
	switch {
	case r.Written:
		return OutcomeRewritten
	case mode == ModeCheck && !r.Sorted:
		return OutcomeUnsorted
	case mode == ModeCheck && !r.Formatted:
		return OutcomeUnformatted
	case mode == ModePrint && r.Changed:
		return OutcomeChanged
	default:
		return OutcomeSorted
	}
}

// ProgressSink receives events. OnEvent is called from worker goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
