package model

import (
	"time"

	"article-hub/internal/domain"
	"article-hub/internal/domain/validate"
)

// Step names one stage of the signup wizard. The order is fixed: basic info,
// then code verification, then topic selection. Exactly one step is active
// per draft at any time.
type Step string

const (
	StepBasicInfo       Step = "basic_info"
	StepOtpVerification Step = "otp_verification"
	StepTopicSelection  Step = "topic_selection"
)

var stepOrder = []Step{StepBasicInfo, StepOtpVerification, StepTopicSelection}

func (s Step) index() int {
	for i, st := range stepOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Next returns the following step, or "" when s is terminal.
func (s Step) Next() Step {
	i := s.index()
	if i < 0 || i+1 >= len(stepOrder) {
		return ""
	}
	return stepOrder[i+1]
}

// Prev returns the preceding step, or "" when s is the first.
func (s Step) Prev() Step {
	i := s.index()
	if i <= 0 {
		return ""
	}
	return stepOrder[i-1]
}

// PersonalInfo is the basic-info step's payload, held verbatim in the draft
// until the flow completes. ConfirmPassword never leaves the draft.
type PersonalInfo struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	DateOfBirth     string `json:"date_of_birth"` // YYYY-MM-DD
	Password        string `json:"-"`
	ConfirmPassword string `json:"-"`
}

// RegistrationDraft is the transient, server-held state of one signup flow.
// It is created empty on flow start, mutated only by the user's own
// submissions and successful side-effect completions, and discarded on
// completion or TTL expiry. It is never persisted to the primary store.
type RegistrationDraft struct {
	FlowID       string       `json:"flow_id"`
	CurrentStep  Step         `json:"current_step"`
	Personal     PersonalInfo `json:"personal"`
	PasswordHash string       `json:"password_hash"`
	CodeVerified bool         `json:"code_verified"`
	Topics       []string     `json:"topics"`
	StartedAt    time.Time    `json:"started_at"`
}

func NewRegistrationDraft(flowID string) *RegistrationDraft {
	return &RegistrationDraft{
		FlowID:      flowID,
		CurrentStep: StepBasicInfo,
		StartedAt:   time.Now(),
	}
}

// ValidateStep runs the predicate set for one step against the draft plus
// the step's fresh input, returning the field-keyed failures. An empty map
// means the step may advance.
func (d *RegistrationDraft) ValidateStep(step Step, now time.Time) validate.ErrorMap {
	errs := validate.ErrorMap{}
	switch step {
	case StepBasicInfo:
		if msg := validate.Name("first name", d.Personal.FirstName); msg != "" {
			errs["firstName"] = msg
		}
		if msg := validate.Name("last name", d.Personal.LastName); msg != "" {
			errs["lastName"] = msg
		}
		if msg := validate.Phone(d.Personal.Phone); msg != "" {
			errs["phone"] = msg
		}
		if msg := validate.Email(d.Personal.Email); msg != "" {
			errs["email"] = msg
		}
		if msg := validate.DateOfBirth(d.Personal.DateOfBirth, now); msg != "" {
			errs["dateOfBirth"] = msg
		}
		if msg := validate.Password(d.Personal.Password); msg != "" {
			errs["password"] = msg
		}
		if msg := validate.ConfirmPassword(d.Personal.Password, d.Personal.ConfirmPassword); msg != "" {
			errs["confirmPassword"] = msg
		}
	case StepTopicSelection:
		if msg := validate.Topics(d.Topics); msg != "" {
			errs["topics"] = msg
		}
	}
	return errs
}

// Advance moves the draft one step forward. Callers run ValidateStep and the
// step's side effect first; Advance only enforces ordering.
func (d *RegistrationDraft) Advance(from Step) error {
	if d.CurrentStep != from {
		return domain.ErrStepOrder
	}
	next := from.Next()
	if next == "" {
		return domain.ErrStepOrder
	}
	d.CurrentStep = next
	return nil
}

// Retreat moves one step back. Always permitted from a non-initial step and
// never clears data entered in the step being left.
func (d *RegistrationDraft) Retreat() error {
	prev := d.CurrentStep.Prev()
	if prev == "" {
		return domain.ErrStepOrder
	}
	d.CurrentStep = prev
	return nil
}

// Complete reports whether every step has been satisfied: personal info
// collected, code verified, at least one topic chosen.
func (d *RegistrationDraft) Complete() bool {
	return d.CurrentStep == StepTopicSelection &&
		d.CodeVerified &&
		len(d.Topics) > 0 &&
		d.PasswordHash != ""
}
