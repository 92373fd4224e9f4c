package usecase

import (
	"context"
	"time"

	"article-hub/internal/domain"
	"article-hub/internal/domain/model"
	"article-hub/internal/domain/ports/repository"
	"article-hub/internal/domain/validate"
	"article-hub/internal/infra/logging"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var _ ProfileUseCase = (*profileUC)(nil)

// ProfileEdit carries the editable fields of an account. Nil pointers leave
// the field alone, the same convention model.ArticleUpdate uses.
type ProfileEdit struct {
	FirstName   *string
	LastName    *string
	Phone       *string
	DateOfBirth *string // ISO date
	Bio         *string
}

type ProfileUseCase interface {
	Get(ctx context.Context, userID string) (*model.User, error)
	Update(ctx context.Context, userID string, edit ProfileEdit) (*model.User, validate.ErrorMap, error)
	// ResetPassword checks the current password before accepting the new
	// one; on success every open session for the user is revoked by the
	// caller.
	ResetPassword(ctx context.Context, userID, current, next, confirm string) (validate.ErrorMap, error)
	UpdatePreferences(ctx context.Context, userID string, topics []string) (*model.User, validate.ErrorMap, error)
}

type profileUC struct {
	users repository.UserRepository
	log   *zerolog.Logger
	now   func() time.Time
}

func NewProfileUseCase(users repository.UserRepository, logger *zerolog.Logger) *profileUC {
	return &profileUC{users: users, log: logger, now: time.Now}
}

func (u *profileUC) Get(ctx context.Context, userID string) (*model.User, error) {
	return u.users.FindByID(ctx, repository.NoTX, userID)
}

func (u *profileUC) Update(ctx context.Context, userID string, edit ProfileEdit) (*model.User, validate.ErrorMap, error) {
	defer logging.TraceDuration(u.log, "ProfileUC.Update")()

	user, err := u.users.FindByID(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, nil, err
	}

	errs := validate.ErrorMap{}
	if edit.FirstName != nil {
		if msg := validate.Name("first name", *edit.FirstName); msg != "" {
			errs["firstName"] = msg
		} else {
			user.FirstName = *edit.FirstName
		}
	}
	if edit.LastName != nil {
		if msg := validate.Name("last name", *edit.LastName); msg != "" {
			errs["lastName"] = msg
		} else {
			user.LastName = *edit.LastName
		}
	}
	if edit.Phone != nil {
		if msg := validate.Phone(*edit.Phone); msg != "" {
			errs["phone"] = msg
		} else {
			user.Phone = *edit.Phone
		}
	}
	if edit.DateOfBirth != nil {
		if msg := validate.DateOfBirth(*edit.DateOfBirth, u.now()); msg != "" {
			errs["dateOfBirth"] = msg
		} else {
			dob, _ := time.Parse("2006-01-02", *edit.DateOfBirth)
			user.DateOfBirth = dob
		}
	}
	if edit.Bio != nil {
		user.Bio = *edit.Bio
	}
	if !errs.Valid() {
		return nil, errs, nil
	}

	user.Touch()
	if err := u.users.Save(ctx, repository.NoTX, user); err != nil {
		return nil, nil, err
	}
	return user, nil, nil
}

func (u *profileUC) ResetPassword(ctx context.Context, userID, current, next, confirm string) (validate.ErrorMap, error) {
	defer logging.TraceDuration(u.log, "ProfileUC.ResetPassword")()

	user, err := u.users.FindByID(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	errs := validate.ErrorMap{}
	if msg := validate.Password(next); msg != "" {
		errs["password"] = msg
	}
	if msg := validate.ConfirmPassword(next, confirm); msg != "" {
		errs["confirmPassword"] = msg
	}
	if !errs.Valid() {
		return errs, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if err := u.users.UpdatePassword(ctx, repository.NoTX, userID, string(hash)); err != nil {
		return nil, err
	}
	u.log.Info().Str("user_id", userID).Msg("password reset")
	return nil, nil
}

func (u *profileUC) UpdatePreferences(ctx context.Context, userID string, topics []string) (*model.User, validate.ErrorMap, error) {
	defer logging.TraceDuration(u.log, "ProfileUC.UpdatePreferences")()

	topics = model.DedupeTopics(topics)
	if msg := validate.Topics(topics); msg != "" {
		return nil, validate.ErrorMap{"topics": msg}, nil
	}
	for _, t := range topics {
		if !model.IsKnownTopic(t) {
			return nil, validate.ErrorMap{"topics": "unknown topic " + t}, nil
		}
	}

	if err := u.users.ReplaceTopics(ctx, repository.NoTX, userID, topics); err != nil {
		return nil, nil, err
	}
	user, err := u.users.FindByID(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, nil, nil
}
