package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/felixbrock/lingobridge/internal/domain"
)

const (
	requestFailedMsg = "Request failed"
	unknownErrorMsg  = "Unknown error"
)

// SubmissionState is one of Idle, Loading, Succeeded or Failed.
type SubmissionState interface {
	String() string
	isSubmissionState()
}

type Idle struct{}

type Loading struct{}

type Succeeded struct {
	Feedback domain.Feedback
}

type Failed struct {
	Message string
}

func (Idle) String() string      { return "idle" }
func (Loading) String() string   { return "loading" }
func (Succeeded) String() string { return "succeeded" }
func (Failed) String() string    { return "failed" }

func (Idle) isSubmissionState()      {}
func (Loading) isSubmissionState()   {}
func (Succeeded) isSubmissionState() {}
func (Failed) isSubmissionState()    {}

// Outcome tells a caller of Submit what became of its input.
type Outcome int

const (
	// Ignored: the input was blank and nothing was sent.
	Ignored Outcome = iota
	// Settled: the request finished and its result is the current state.
	Settled
	// Superseded: a newer submission or a Reset took over while the request
	// was in flight. Its result was dropped.
	Superseded
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Settled:
		return "settled"
	case Superseded:
		return "superseded"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

type GrammarRepo interface {
	Check(ctx context.Context, grammarReq domain.GrammarRequest) (*domain.Feedback, error)
}

// Submission drives one Quick Fix form. Only the most recent submission may
// settle the state: starting a new one, or calling Reset, cancels the request
// in flight and drops its outcome.
type Submission struct {
	repo         GrammarRepo
	extraContext map[string]any

	mu        sync.Mutex
	state     SubmissionState
	seq       uint64
	cancel    context.CancelFunc
	observers []func(SubmissionState)
}

type SubmissionOption func(*Submission)

// WithExtraContext sends extra as extra_context with every request.
func WithExtraContext(extra map[string]any) SubmissionOption {
	return func(s *Submission) {
		if len(extra) > 0 {
			s.extraContext = extra
		}
	}
}

func NewSubmission(repo GrammarRepo, opts ...SubmissionOption) *Submission {
	s := &Submission{repo: repo, state: Idle{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Submission) State() SubmissionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OnChange registers fn to be called after every state transition. fn runs on
// the goroutine that caused the transition.
func (s *Submission) OnChange(fn func(SubmissionState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Submit checks input with the grammar backend. When the outcome is Settled
// the returned state is the one the request settled in. Blank input is
// Ignored and leaves the current state untouched. A Superseded request
// returns Idle: the state it would have set belongs to someone else now.
func (s *Submission) Submit(ctx context.Context, input string) (SubmissionState, Outcome) {
	if strings.TrimSpace(input) == "" {
		return s.State(), Ignored
	}

	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	seq := s.seq
	s.cancel = cancel
	observers := s.transition(Loading{})
	s.mu.Unlock()
	notify(observers, Loading{})

	feedback, err := s.repo.Check(reqCtx, domain.GrammarRequest{
		Sentence:     input,
		TaskType:     domain.QuickFix,
		ExtraContext: s.extraContext,
	})

	var next SubmissionState
	if err != nil {
		next = Failed{Message: failureMessage(err)}
	} else if feedback == nil {
		next = Failed{Message: unknownErrorMsg}
	} else {
		next = Succeeded{Feedback: *feedback}
	}

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return Idle{}, Superseded
	}
	s.cancel = nil
	observers = s.transition(next)
	s.mu.Unlock()
	notify(observers, next)

	return next, Settled
}

// Reset abandons any request in flight and returns to Idle.
func (s *Submission) Reset() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
	observers := s.transition(Idle{})
	s.mu.Unlock()
	notify(observers, Idle{})
}

// transition must be called with mu held.
func (s *Submission) transition(next SubmissionState) []func(SubmissionState) {
	s.state = next
	return append([]func(SubmissionState){}, s.observers...)
}

func notify(observers []func(SubmissionState), state SubmissionState) {
	for _, fn := range observers {
		fn(state)
	}
}

func failureMessage(err error) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.Message(); msg != "" {
			return msg
		}
		return requestFailedMsg
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return unknownErrorMsg
}
