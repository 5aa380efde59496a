// Package auth handles signup/login/anonymous sessions and triggers the
// anonymous-to-registered account migration when an anonymous session is
// linked to an existing account.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/domain"
	accountrepo "github.com/salehkamalkamel/rofida-furniture-sub001/internal/repository/account"
	tokenrepo "github.com/salehkamalkamel/rofida-furniture-sub001/internal/repository/token"
	userrepo "github.com/salehkamalkamel/rofida-furniture-sub001/internal/repository/user"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

type userRepo interface {
	Create(ctx context.Context, in userrepo.CreateInput) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Promote(ctx context.Context, id, name, email, passwordHash string) (*domain.User, error)
}

type Service struct {
	users       userRepo
	accounts    accountrepo.Repository
	tokens      *tokenManager
	logger      logrus.FieldLogger
	accessTTL   time.Duration
	refreshTTL  time.Duration
	passwordMin int
}

func New(users userrepo.Repository, accounts accountrepo.Repository, tokens tokenrepo.Repository, logger logrus.FieldLogger) *Service {
	if logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		logger = l
	}
	return &Service{
		users:       users,
		accounts:    accounts,
		tokens:      newTokenManager(tokens),
		logger:      logger,
		accessTTL:   48 * time.Hour,
		refreshTTL:  30 * 24 * time.Hour,
		passwordMin: 8,
	}
}

// TokenPair is an issued access/refresh pair.
type TokenPair struct {
	Access  string `json:"accessToken"`
	Refresh string `json:"refreshToken"`
}

// SignupInput captures fields expected by the signup endpoint.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Anonymous mints a placeholder user for a first visit and issues a
// session for it.
func (s *Service) Anonymous(ctx context.Context) (*domain.User, *TokenPair, error) {
	u, err := s.users.Create(ctx, userrepo.CreateInput{
		Email:       fmt.Sprintf("anon-%s@%s", uuid.NewString(), domain.GuestEmailDomain),
		IsAnonymous: true,
	})
	if err != nil {
		return nil, nil, err
	}
	pair, err := s.issuePair(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

// Signup registers a new account. When the request rides on an anonymous
// session, the anonymous row is upgraded in place so its cart and
// history stay attached to the same id.
func (s *Service) Signup(ctx context.Context, sess *domain.Session, in SignupInput) (*domain.User, *TokenPair, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, nil, fmt.Errorf("%w: email required", domain.ErrValidation)
	}
	password := strings.TrimSpace(in.Password)
	if len(password) < s.passwordMin {
		return nil, nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, s.passwordMin)
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, nil, domain.ErrAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	var u *domain.User
	if sess != nil && sess.IsAnonymous {
		u, err = s.users.Promote(ctx, sess.UserID, in.Name, email, string(hashed))
	} else {
		u, err = s.users.Create(ctx, userrepo.CreateInput{
			Name:         in.Name,
			Email:        email,
			PasswordHash: string(hashed),
		})
	}
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.issuePair(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

// Login validates credentials. When the request rides on an anonymous
// session belonging to a different user, the anonymous identity's
// orders, addresses, cart and wishlist are migrated into the account
// atomically; a failed migration fails the login.
func (s *Service) Login(ctx context.Context, sess *domain.Session, email, password string) (*domain.User, *TokenPair, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(password))) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if sess != nil && sess.IsAnonymous && sess.UserID != u.ID {
		if err := s.accounts.MigrateAnonymous(ctx, sess.UserID, u.ID); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"anonymous_user_id": sess.UserID,
				"user_id":           u.ID,
			}).Error("auth: anonymous migration failed, login aborted")
			return nil, nil, err
		}
	}

	pair, err := s.issuePair(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

// SessionFromToken resolves a bearer token to the request identity tuple.
func (s *Service) SessionFromToken(ctx context.Context, token string) (*domain.Session, error) {
	meta, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	u, err := s.users.GetByID(ctx, meta.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return &domain.Session{UserID: u.ID, IsAnonymous: u.IsAnonymous, Role: u.Role}, nil
}

// Logout revokes the presented access token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

func (s *Service) issuePair(ctx context.Context, userID string) (*TokenPair, error) {
	access, err := s.tokens.Issue(ctx, userID, "access", s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Issue(ctx, userID, "refresh", s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}
