package form

import (
	"errors"
	"fmt"
	"time"

	"iris_registry/models"

	"github.com/google/uuid"
)

type Step int

const (
	Step1 Step = iota + 1
	Step2
	Submitted
)

func (s Step) String() string {
	switch s {
	case Step1:
		return "step1"
	case Step2:
		return "step2"
	case Submitted:
		return "submitted"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// ValidationError blocks an edit or a transition. It is recoverable by
// correcting the input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var ErrInvalidTransition = errors.New("transition not allowed from the current step")

// Form is the wizard session: the draft plus the UI-only state.
type Form struct {
	draft     Draft
	step      Step
	submitted bool
	requestID string

	now func() time.Time
}

type Option func(*Form)

// WithClock replaces time.Now for age calculation.
func WithClock(now func() time.Time) Option {
	return func(f *Form) { f.now = now }
}

func New(opts ...Option) *Form {
	f := &Form{
		step:      Step1,
		requestID: uuid.NewString(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Form) Draft() Draft { return f.draft }
func (f *Form) Step() Step   { return f.step }

// Submitted reports whether the success banner is shown.
func (f *Form) Submitted() bool { return f.submitted }

// RequestID identifies the current draft. It is stable across retries of the
// same submission and changes once the draft is reset.
func (f *Form) RequestID() string { return f.requestID }

func (f *Form) SetName(v string) error {
	d, err := f.draft.WithName(v)
	if err != nil {
		return err
	}
	f.draft = d
	return nil
}

func (f *Form) SetSalary(v string) { f.draft = f.draft.WithSalary(v) }

func (f *Form) SetDOB(v string) error {
	d, err := f.draft.WithDOB(v, f.now())
	if err != nil {
		return err
	}
	f.draft = d
	return nil
}

func (f *Form) SetCurrentAddress(v string)   { f.draft = f.draft.WithCurrentAddress(v) }
func (f *Form) SetPermanentAddress(v string) { f.draft = f.draft.WithPermanentAddress(v) }
func (f *Form) SetSameAddress(same bool)     { f.draft = f.draft.WithSameAddress(same) }
func (f *Form) ToggleSameAddress()           { f.SetSameAddress(!f.draft.SameAddress) }

func (f *Form) SetDepartment(v string) error {
	d, err := f.draft.WithDepartment(v)
	if err != nil {
		return err
	}
	f.draft = d
	return nil
}

func (f *Form) SetDesignation(v string) error {
	d, err := f.draft.WithDesignation(v)
	if err != nil {
		return err
	}
	f.draft = d
	return nil
}

// Next moves from step 1 to step 2 once all step 1 fields are present.
func (f *Form) Next() error {
	if f.step != Step1 {
		return ErrInvalidTransition
	}
	if err := f.draft.checkStep1(); err != nil {
		return err
	}
	f.step = Step2
	return nil
}

// Back returns to step 1 keeping every field.
func (f *Form) Back() error {
	if f.step != Step2 {
		return ErrInvalidTransition
	}
	f.step = Step1
	return nil
}

// Prepare checks the step 2 guard and returns the record to submit.
func (f *Form) Prepare() (models.Employee, error) {
	if f.step != Step2 {
		return models.Employee{}, ErrInvalidTransition
	}
	if err := f.draft.checkStep2(); err != nil {
		return models.Employee{}, err
	}
	return f.draft.Record(f.requestID), nil
}

// MarkSubmitted is called after the registry acknowledged the record.
func (f *Form) MarkSubmitted() {
	f.draft = Draft{}
	f.step = Submitted
	f.submitted = true
	f.requestID = uuid.NewString()
}

// Reset clears the draft and starts over at step 1.
func (f *Form) Reset() {
	f.draft = Draft{}
	f.step = Step1
	f.submitted = false
	f.requestID = uuid.NewString()
}
