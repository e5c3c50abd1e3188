package controller

import "github.com/BerylCAtieno/smm-content-analyzer/internal/models"

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseDisplaying Phase = "displaying"
	PhaseFailed     Phase = "failed"
)

// State is one of Idle, Submitting, Displaying or Failed. Each variant only
// carries the data valid in that phase, so a loading state never holds a
// report and a displayed report never holds an error.
type State interface {
	Phase() Phase
	isState()
}

type Idle struct{}

type Submitting struct {
	Seq uint64
}

type Displaying struct {
	Report *models.AnalysisReport
}

type Failed struct {
	Message string
	Err     error
}

func (Idle) Phase() Phase       { return PhaseIdle }
func (Submitting) Phase() Phase { return PhaseSubmitting }
func (Displaying) Phase() Phase { return PhaseDisplaying }
func (Failed) Phase() Phase     { return PhaseFailed }

func (Idle) isState()       {}
func (Submitting) isState() {}
func (Displaying) isState() {}
func (Failed) isState()     {}

// View is the flattened snapshot presentations render from.
type View struct {
	Phase     Phase                   `json:"phase" yaml:"phase"`
	Seq       uint64                  `json:"seq" yaml:"seq"`
	Audience  models.TargetAudience   `json:"audience" yaml:"audience"`
	Content   models.InstagramContent `json:"content" yaml:"content"`
	Report    *models.AnalysisReport  `json:"report" yaml:"report"`
	IsLoading bool                    `json:"isLoading" yaml:"isLoading"`
	Error     *string                 `json:"error" yaml:"error"`
}

func newView(state State, seq uint64, audience models.TargetAudience, content models.InstagramContent) View {
	v := View{
		Phase:    state.Phase(),
		Seq:      seq,
		Audience: audience,
		Content:  content,
	}
	switch s := state.(type) {
	case Submitting:
		v.IsLoading = true
	case Displaying:
		v.Report = s.Report
	case Failed:
		msg := s.Message
		v.Error = &msg
	}
	return v
}
