package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskforge/task-management/internal/core/domain"
	"github.com/taskforge/task-management/internal/core/ports"
)

// AuthService implements signup and login. Signup is the one user write
// path the service exposes, so it also owns invalidating the cached
// directory views touched by the new user.
type AuthService struct {
	repo      ports.UserRepository
	cache     ports.Cache
	mailer    ports.Mailer
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, cache ports.Cache, mailer ports.Mailer, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 15 * time.Minute
	}
	return &AuthService{repo: repo, cache: cache, mailer: mailer, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
	role := domain.RoleUser
	if input.Role != "" {
		parsed, ok := domain.ParseRole(input.Role)
		if !ok {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, input.Role)
		}
		role = parsed
	}

	if role == domain.RoleManager && input.Manager != "" {
		return nil, fmt.Errorf("%w: a manager cannot have a manager", domain.ErrValidation)
	}
	if n := len(input.Username); n < 3 || n > 20 {
		return nil, fmt.Errorf("%w: username must be between 3 and 20 characters", domain.ErrValidation)
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByLogin(ctx, "", input.Email); err == nil {
		return nil, fmt.Errorf("%w: email already taken", domain.ErrUserExists)
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.repo.FindByLogin(ctx, input.Username, ""); err == nil {
		return nil, fmt.Errorf("%w: username already taken", domain.ErrUserExists)
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		Manager:      input.Manager,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateUserViews(ctx, created)
	s.sendWelcome(created)

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Str("role", string(created.Role)).Msg("user signed up")
	return created, nil
}

// invalidateUserViews retires every cached directory view the new user
// appears in. Cache errors are logged and swallowed: the entries expire by
// TTL anyway, and a cache outage must not fail signup.
func (s *AuthService) invalidateUserViews(ctx context.Context, u *domain.User) {
	keys := []string{ports.CacheKeyAllUsers, ports.CacheKeyUserPrefix + u.ID}
	if u.Manager != "" {
		keys = append(keys, ports.CacheKeyTeamPrefix+u.Manager)
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.logger.Warn().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}

// sendWelcome fires the signup email without gating the response on it.
func (s *AuthService) sendWelcome(u *domain.User) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.mailer.SendWelcome(ctx, u.Email, u.Username); err != nil {
			s.logger.Warn().Err(err).Str("email", u.Email).Msg("welcome email failed")
		}
	}()
}

func (s *AuthService) Login(ctx context.Context, username, email, password string) (string, *domain.User, error) {
	if username == "" && email == "" {
		return "", nil, fmt.Errorf("%w: provide a username or an email", domain.ErrValidation)
	}

	user, err := s.repo.FindByLogin(ctx, username, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// validatePassword enforces the signup password policy: 8 to 15
// alphanumeric characters with at least one letter and one digit.
func validatePassword(password string) error {
	if n := len(password); n < 8 || n > 15 {
		return fmt.Errorf("%w: password must be between 8 and 15 characters", domain.ErrValidation)
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		default:
			return fmt.Errorf("%w: password may only contain letters and digits", domain.ErrValidation)
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("%w: password must contain at least one letter and one digit", domain.ErrValidation)
	}
	return nil
}
