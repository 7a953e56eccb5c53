package testutils

import (
	"context"
	"sort"
	"sync"
	"time"

	userModel "github.com/pegatrainingexilent2-lang/pega-learning-app/internal/model/user"
	userStore "github.com/pegatrainingexilent2-lang/pega-learning-app/internal/user"
)

// MemoryUserStore is an in-memory user.Store for service tests
type MemoryUserStore struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*userModel.User

	// Err, when set, is returned by every call
	Err error
}

var _ userStore.Store = (*MemoryUserStore)(nil)

func NewMemoryUserStore(seed ...*userModel.User) *MemoryUserStore {
	s := &MemoryUserStore{users: make(map[int]*userModel.User)}
	for _, u := range seed {
		_ = s.Create(context.Background(), u)
	}
	return s
}

func (s *MemoryUserStore) Create(_ context.Context, u *userModel.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return userStore.ErrAlreadyExists
		}
	}
	s.nextID++
	u.ID = s.nextID
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *MemoryUserStore) GetByID(_ context.Context, id int) (*userModel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, userStore.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryUserStore) GetByEmail(_ context.Context, email string) (*userModel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u := s.findByEmail(email)
	if u == nil {
		return nil, userStore.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryUserStore) ListPending(_ context.Context) ([]userModel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []userModel.User
	for _, u := range s.users {
		if !u.IsApproved {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryUserStore) SetApproved(_ context.Context, id int, approved bool) (*userModel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, userStore.ErrNotFound
	}
	u.IsApproved = approved
	cp := *u
	return &cp, nil
}

func (s *MemoryUserStore) SetPremiumByEmail(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	u := s.findByEmail(email)
	if u == nil {
		return userStore.ErrNotFound
	}
	u.IsPremium = true
	return nil
}

func (s *MemoryUserStore) SetResetToken(_ context.Context, id int, token string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return userStore.ErrNotFound
	}
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	return nil
}

func (s *MemoryUserStore) RedeemResetToken(_ context.Context, token, passwordHash string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, u := range s.users {
		if u.ResetToken != nil && *u.ResetToken == token && u.ResetTokenExpiry != nil && !now.After(*u.ResetTokenExpiry) {
			u.PasswordHash = passwordHash
			u.ResetToken = nil
			u.ResetTokenExpiry = nil
			return nil
		}
	}
	return userStore.ErrNotFound
}

func (s *MemoryUserStore) UpdatePassword(_ context.Context, email, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	u := s.findByEmail(email)
	if u == nil {
		return userStore.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (s *MemoryUserStore) findByEmail(email string) *userModel.User {
	for _, u := range s.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}
