package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"article-hub/internal/domain"
	"article-hub/internal/domain/model"
	"article-hub/internal/domain/ports/adapter"
	"article-hub/internal/domain/ports/repository"
	"article-hub/internal/domain/validate"
	"article-hub/internal/infra/logging"
	"article-hub/internal/infra/metrics"
	"article-hub/internal/infra/redis"
	"article-hub/internal/infra/worker"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Compile-time check
var _ RegistrationUseCase = (*registrationUC)(nil)

// RegistrationUseCase drives the three-step signup wizard. Each Submit
// method validates its step locally, performs the step's side effect, and
// advances the draft; validation failures come back as a field-keyed map,
// everything else as an error. No call retries on failure; the draft is
// left exactly as it was and the caller resubmits.
type RegistrationUseCase interface {
	SubmitBasicInfo(ctx context.Context, flowID string, info model.PersonalInfo) (*model.RegistrationDraft, validate.ErrorMap, error)
	VerifyCode(ctx context.Context, flowID string, slots []string) (*model.RegistrationDraft, validate.ErrorMap, error)
	ResendCode(ctx context.Context, flowID string) error
	SubmitTopics(ctx context.Context, flowID string, topics []string) (*model.User, validate.ErrorMap, error)
	Retreat(ctx context.Context, flowID string) (*model.RegistrationDraft, error)
}

type registrationUC struct {
	drafts  repository.RegistrationStateRepository
	codes   repository.VerificationCodeStore
	users   repository.UserRepository
	tm      repository.TransactionManager
	sender  adapter.CodeSender
	jobs    *worker.Pool
	limiter *redis.RateLimiter
	resendLimit  int
	resendWindow time.Duration
	log     *zerolog.Logger
	now     func() time.Time
}

func NewRegistrationUseCase(
	drafts repository.RegistrationStateRepository,
	codes repository.VerificationCodeStore,
	users repository.UserRepository,
	tm repository.TransactionManager,
	sender adapter.CodeSender,
	jobs *worker.Pool,
	limiter *redis.RateLimiter,
	resendLimit int,
	resendWindow time.Duration,
	logger *zerolog.Logger,
) *registrationUC {
	return &registrationUC{
		drafts:       drafts,
		codes:        codes,
		users:        users,
		tm:           tm,
		sender:       sender,
		jobs:         jobs,
		limiter:      limiter,
		resendLimit:  resendLimit,
		resendWindow: resendWindow,
		log:          logger,
		now:          time.Now,
	}
}

// SubmitBasicInfo runs the basic-info predicates and, on all-pass, hashes
// the password, stores the draft, dispatches a verification code and
// advances to the verification step. An empty flowID starts a fresh flow.
func (u *registrationUC) SubmitBasicInfo(ctx context.Context, flowID string, info model.PersonalInfo) (*model.RegistrationDraft, validate.ErrorMap, error) {
	defer logging.TraceDuration(u.log, "RegistrationUC.SubmitBasicInfo")()

	draft, err := u.loadOrStart(ctx, flowID)
	if err != nil {
		return nil, nil, err
	}
	if draft.CurrentStep != model.StepBasicInfo {
		return nil, nil, domain.ErrStepOrder
	}

	draft.Personal = info
	if errs := draft.ValidateStep(model.StepBasicInfo, u.now()); !errs.Valid() {
		return draft, errs, nil
	}

	// Reject an email that already belongs to a committed account before
	// wasting a code on it.
	if existing, err := u.users.FindByEmail(ctx, repository.NoTX, info.Email); err == nil && !existing.IsZero() {
		return draft, validate.ErrorMap{"email": "an account with this email already exists"}, nil
	} else if err != nil && err != domain.ErrNotFound {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(info.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}
	draft.PasswordHash = string(hash)
	// Plaintext never reaches the draft store; the json tags drop it too.
	draft.Personal.Password = ""
	draft.Personal.ConfirmPassword = ""

	if err := u.issueCode(ctx, draft.Personal.Email, "register"); err != nil {
		return nil, nil, err
	}

	if err := draft.Advance(model.StepBasicInfo); err != nil {
		return nil, nil, err
	}
	if err := u.drafts.SetDraft(ctx, draft); err != nil {
		return nil, nil, err
	}

	metrics.IncRegistrationStarted()
	u.log.Info().Str("flow_id", draft.FlowID).Msg("signup basic info accepted")
	return draft, nil, nil
}

// VerifyCode checks the six slots against the stored code. The comparison
// is constant time; on success the used code is consumed and the draft
// advances to topic selection.
func (u *registrationUC) VerifyCode(ctx context.Context, flowID string, slots []string) (*model.RegistrationDraft, validate.ErrorMap, error) {
	defer logging.TraceDuration(u.log, "RegistrationUC.VerifyCode")()

	draft, err := u.drafts.GetDraft(ctx, flowID)
	if err != nil {
		return nil, nil, err
	}
	if draft.CurrentStep != model.StepOtpVerification {
		return nil, nil, domain.ErrStepOrder
	}

	if msg := validate.OTP(slots); msg != "" {
		return draft, validate.ErrorMap{"otp": msg}, nil
	}

	stored, err := u.codes.Get(ctx, draft.Personal.Email)
	if err != nil {
		if err == domain.ErrCodeExpired {
			metrics.IncCodeChecked("expired")
		}
		return nil, nil, err
	}

	entered := ""
	for _, s := range slots {
		entered += s
	}
	if subtle.ConstantTimeCompare([]byte(entered), []byte(stored)) != 1 {
		metrics.IncCodeChecked("mismatch")
		return nil, nil, domain.ErrCodeMismatch
	}

	_ = u.codes.Delete(ctx, draft.Personal.Email)
	draft.CodeVerified = true
	if err := draft.Advance(model.StepOtpVerification); err != nil {
		return nil, nil, err
	}
	if err := u.drafts.SetDraft(ctx, draft); err != nil {
		return nil, nil, err
	}

	metrics.IncCodeChecked("ok")
	return draft, nil, nil
}

// ResendCode regenerates and redelivers the code. Rate limited per email so
// the mail adapter cannot be used as a spam cannon.
func (u *registrationUC) ResendCode(ctx context.Context, flowID string) error {
	defer logging.TraceDuration(u.log, "RegistrationUC.ResendCode")()

	draft, err := u.drafts.GetDraft(ctx, flowID)
	if err != nil {
		return err
	}
	if draft.CurrentStep != model.StepOtpVerification {
		return domain.ErrStepOrder
	}

	ok, err := u.limiter.Allow(ctx, redis.ResendKey(draft.Personal.Email), u.resendLimit, u.resendWindow)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrRateLimited
	}

	return u.issueCode(ctx, draft.Personal.Email, "resend")
}

// SubmitTopics is the final step: validates the selection and commits the
// account atomically (user row plus topic rows). The draft is discarded on
// success.
func (u *registrationUC) SubmitTopics(ctx context.Context, flowID string, topics []string) (*model.User, validate.ErrorMap, error) {
	defer logging.TraceDuration(u.log, "RegistrationUC.SubmitTopics")()

	draft, err := u.drafts.GetDraft(ctx, flowID)
	if err != nil {
		return nil, nil, err
	}
	if draft.CurrentStep != model.StepTopicSelection {
		return nil, nil, domain.ErrStepOrder
	}

	draft.Topics = model.DedupeTopics(topics)
	if errs := draft.ValidateStep(model.StepTopicSelection, u.now()); !errs.Valid() {
		return nil, errs, nil
	}
	for _, t := range draft.Topics {
		if !model.IsKnownTopic(t) {
			return nil, validate.ErrorMap{"topics": fmt.Sprintf("unknown topic %q", t)}, nil
		}
	}
	if !draft.Complete() {
		return nil, nil, domain.ErrStepOrder
	}

	dob, err := time.Parse("2006-01-02", draft.Personal.DateOfBirth)
	if err != nil {
		return nil, nil, domain.ErrInvalidArgument
	}

	user, err := model.NewUser("", draft.Personal.FirstName, draft.Personal.LastName,
		draft.Personal.Email, draft.Personal.Phone, dob, draft.PasswordHash, draft.Topics)
	if err != nil {
		return nil, nil, err
	}

	txOpts := pgx.TxOptions{IsoLevel: pgx.Serializable}
	err = u.tm.WithTx(ctx, txOpts, func(ctx context.Context, tx repository.Tx) error {
		return u.users.Save(ctx, tx, user)
	})
	if err != nil {
		if err == domain.ErrAlreadyExists {
			return nil, validate.ErrorMap{"email": "an account with this email already exists"}, nil
		}
		return nil, nil, err
	}

	_ = u.drafts.ClearDraft(ctx, flowID)
	metrics.IncRegistrationCompleted()
	u.log.Info().Str("flow_id", flowID).Str("user_id", user.ID).Msg("signup completed")
	return user, nil, nil
}

// Retreat moves one step back without touching entered data.
func (u *registrationUC) Retreat(ctx context.Context, flowID string) (*model.RegistrationDraft, error) {
	draft, err := u.drafts.GetDraft(ctx, flowID)
	if err != nil {
		return nil, err
	}
	if err := draft.Retreat(); err != nil {
		return nil, err
	}
	if err := u.drafts.SetDraft(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (u *registrationUC) loadOrStart(ctx context.Context, flowID string) (*model.RegistrationDraft, error) {
	if flowID == "" {
		return model.NewRegistrationDraft(uuid.NewString()), nil
	}
	draft, err := u.drafts.GetDraft(ctx, flowID)
	if err == domain.ErrDraftNotFound {
		return model.NewRegistrationDraft(uuid.NewString()), nil
	}
	return draft, err
}

// issueCode generates, stores and dispatches a fresh code. Delivery goes
// through the worker pool so the HTTP handler never waits on SMTP; when the
// pool is saturated the send happens inline instead of being dropped.
func (u *registrationUC) issueCode(ctx context.Context, email, trigger string) error {
	code, err := generateVerificationCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	if err := u.codes.Put(ctx, email, code); err != nil {
		return err
	}

	send := func(ctx context.Context) error {
		if err := u.sender.SendCode(ctx, email, code); err != nil {
			u.log.Error().Err(err).Str("email", logging.Redact(email, false)).Msg("verification code delivery failed")
			return err
		}
		return nil
	}
	if u.jobs == nil || u.jobs.Submit(send) != nil {
		_ = send(ctx)
	}

	metrics.IncCodeSent(trigger)
	return nil
}
