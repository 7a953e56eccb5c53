package testutils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/model/topic"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/model/user"
)

// DefaultPassword is the plaintext behind fixtures created without WithPassword.
const DefaultPassword = "password"

// CreateTestUser creates a test user with a unique email
func CreateTestUser(db *gorm.DB, opts ...UserOption) *user.User {
	u := NewTestUser(opts...)
	if err := db.Create(u).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test user: %v", err))
	}
	return u
}

// NewTestUser builds an unsaved user, used with in-memory stores
func NewTestUser(opts ...UserOption) *user.User {
	uniqueID := uuid.New().String()[:8]
	passwordHash, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)

	u := &user.User{
		Name:         "Test " + uniqueID,
		Email:        fmt.Sprintf("test_%s@example.com", uniqueID),
		PasswordHash: string(passwordHash),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// UserOption configures test user
type UserOption func(*user.User)

func WithName(name string) UserOption {
	return func(u *user.User) { u.Name = name }
}

func WithEmail(email string) UserOption {
	return func(u *user.User) { u.Email = email }
}

func WithApproved(approved bool) UserOption {
	return func(u *user.User) { u.IsApproved = approved }
}

func WithPremium(premium bool) UserOption {
	return func(u *user.User) { u.IsPremium = premium }
}

// WithCreatedAt sets the registration time
func WithCreatedAt(at time.Time) UserOption {
	return func(u *user.User) { u.CreatedAt = at }
}

// WithPassword sets the password (will be hashed)
func WithPassword(password string) UserOption {
	return func(u *user.User) {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		u.PasswordHash = string(hash)
	}
}

// WithResetToken sets a pending reset token
func WithResetToken(token string, expiry time.Time) UserOption {
	return func(u *user.User) {
		u.ResetToken = &token
		u.ResetTokenExpiry = &expiry
	}
}

// CreateTestTopic creates a topic section with a unique id
func CreateTestTopic(db *gorm.DB, opts ...func(*topic.TopicSection)) *topic.TopicSection {
	id := "section-" + uuid.New().String()[:8]
	s := &topic.TopicSection{ID: id, Title: "Section " + id, Order: 1}
	for _, opt := range opts {
		opt(s)
	}
	if err := db.Create(s).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test topic: %v", err))
	}
	return s
}

// CreateTestSubTopic creates a sub-topic under sectionID
func CreateTestSubTopic(db *gorm.DB, sectionID string, opts ...func(*topic.SubTopic)) *topic.SubTopic {
	id := "sub-" + uuid.New().String()[:8]
	st := &topic.SubTopic{
		ID:             id,
		TopicSectionID: sectionID,
		Title:          "SubTopic " + id,
		Order:          1,
		Introduction:   "intro",
		Explanation:    "explanation",
		Implementation: "implementation",
		Example:        "example",
	}
	for _, opt := range opts {
		opt(st)
	}
	if err := db.Create(st).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test sub-topic: %v", err))
	}
	return st
}
