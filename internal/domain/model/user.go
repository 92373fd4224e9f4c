package model

import (
	"strings"
	"time"

	"article-hub/internal/domain"

	"github.com/google/uuid"
)

// User is a verified, committed account. Accounts only come into existence
// when the signup wizard completes; in-flight signups live in
// RegistrationDraft instead.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Phone        string // stored encrypted at rest; plaintext in memory
	DateOfBirth  time.Time
	PasswordHash string
	Bio          string
	Topics       []string // preferred topics, set semantics, order irrelevant
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewUser(id, firstName, lastName, email, phone string, dob time.Time, passwordHash string, topics []string) (*User, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if firstName == "" || lastName == "" || email == "" || passwordHash == "" {
		return nil, domain.ErrInvalidArgument
	}
	if len(topics) == 0 {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &User{
		ID:           id,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Phone:        phone,
		DateOfBirth:  dob,
		PasswordHash: passwordHash,
		Topics:       DedupeTopics(topics),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (u *User) IsZero() bool { return u == nil || u.ID == "" }

func (u *User) FullName() string { return u.FirstName + " " + u.LastName }

func (u *User) Touch() { u.UpdatedAt = time.Now() }

// Topics available for article categories and user preferences. The list is
// fixed; clients render it as-is.
var ArticleTopics = []string{
	"Sports",
	"Politics",
	"Space",
	"Technology",
	"Health",
	"Science",
	"Entertainment",
	"Business",
	"Education",
	"Environment",
}

func IsKnownTopic(t string) bool {
	for _, known := range ArticleTopics {
		if known == t {
			return true
		}
	}
	return false
}

// DedupeTopics enforces set semantics while keeping first-seen order.
func DedupeTopics(topics []string) []string {
	seen := make(map[string]struct{}, len(topics))
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
