package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/domain/entity"
	domainerror "github.com/kakeibo/backend/internal/domain/error"
)

var errBackend = errors.New("backend unavailable")

type fakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepository(users ...*entity.User) *fakeUserRepository {
	repo := &fakeUserRepository{users: make(map[string]*entity.User)}
	for _, u := range users {
		repo.users[u.Email] = u
	}
	return repo
}

func (r *fakeUserRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[email]
	return ok, nil
}

// plainPasswordService stores passwords with a visible prefix.
type plainPasswordService struct{}

func (plainPasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainPasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return domainerror.ErrInvalidCredentials
	}
	return nil
}

func (plainPasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return domainerror.ErrWeakPassword
	}
	return nil
}

// fakeTokenService issues opaque tokens and tracks revocations.
type fakeTokenService struct {
	mu      sync.Mutex
	issued  map[string]adapter.TokenClaims
	revoked map[string]bool
	counter int
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{
		issued:  make(map[string]adapter.TokenClaims),
		revoked: make(map[string]bool),
	}
}

func (s *fakeTokenService) GenerateTokenPair(_ context.Context, userID uuid.UUID, email string) (*adapter.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	refresh := "refresh-" + uuid.NewString()
	s.issued[refresh] = adapter.TokenClaims{UserID: userID, Email: email}
	return &adapter.TokenPair{AccessToken: "access-" + uuid.NewString(), RefreshToken: refresh}, nil
}

func (s *fakeTokenService) ValidateAccessToken(_ context.Context, _ string) (*adapter.TokenClaims, error) {
	return nil, domainerror.ErrInvalidToken
}

func (s *fakeTokenService) ValidateRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	claims, ok := s.issued[token]
	if !ok {
		return nil, domainerror.ErrInvalidToken
	}
	return &claims, nil
}

func (s *fakeTokenService) InvalidateRefreshToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.issued[token]; !ok {
		return domainerror.ErrInvalidToken
	}
	s.revoked[token] = true
	return nil
}

func (s *fakeTokenService) IsRefreshTokenValid(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.revoked[token], nil
}

type recordingInitializer struct {
	sessions []entity.Session
	err      error
}

func (r *recordingInitializer) InitializeSession(_ context.Context, session entity.Session) error {
	r.sessions = append(r.sessions, session)
	return r.err
}
