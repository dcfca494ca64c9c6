package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/events"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// Password length bounds. bcrypt ignores input past 72 bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// dummyPassword is hashed once at construction so logins for unknown emails
// still pay for a bcrypt comparison.
const dummyPassword = "taskboard-timing-equalizer"

// Registration carries the fields needed to create an account.
type Registration struct {
	Email    string
	Password string
	Name     string
}

// Result is returned by a successful Register or Login.
type Result struct {
	Token     string
	ExpiresAt time.Time
	Profile   domain.Profile
}

// Service implements registration, login and principal resolution.
type Service struct {
	users     store.UserStore
	tokens    TokenCodec
	passwords PasswordHasher
	events    events.EventEmitter
	logger    *slog.Logger
	dummyHash string
}

// NewService creates an authentication Service. emitter may be nil.
func NewService(
	users store.UserStore,
	tokens TokenCodec,
	passwords PasswordHasher,
	emitter events.EventEmitter,
	log *slog.Logger,
) (*Service, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if tokens == nil {
		return nil, domain.NewValidationError("tokens", "cannot be nil", domain.ErrValidation)
	}
	if passwords == nil {
		return nil, domain.NewValidationError("passwords", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	dummyHash, err := passwords.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy password hash: %w", err)
	}

	return &Service{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		events:    emitter,
		logger:    log.With("component", "auth_service"),
		dummyHash: dummyHash,
	}, nil
}

// ValidatePassword checks the plaintext length bounds.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return domain.NewValidationError("password",
			fmt.Sprintf("must be at least %d characters long", MinPasswordLength), nil)
	}
	if len(password) > MaxPasswordLength {
		return domain.NewValidationError("password",
			fmt.Sprintf("must be at most %d characters long", MaxPasswordLength), nil)
	}
	return nil
}

// Register creates an account with the least-privileged role and signs a token
// for it.
func (s *Service) Register(ctx context.Context, reg Registration) (*Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := ValidatePassword(reg.Password); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(reg.Email, reg.Name, hash)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("registration rejected: email exists")
			return nil, fmt.Errorf("%w: %w", ErrDuplicateIdentity, err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	result, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Info("account registered", "user_id", user.ID)
	s.emit(ctx, events.NewAccountEvent(events.AccountRegistered, user.ID, user.Email))
	return result, nil
}

// Login verifies credentials and signs a token. An unknown email and a wrong
// password both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	normalized := domain.NormalizeEmail(email)
	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil {
		_ = s.passwords.Compare(s.dummyHash, password)
		log.Debug("login rejected: unknown email")
		s.emit(ctx, events.NewAccountEvent(events.AccountLoginFailed, uuid.Nil, normalized))
		return nil, ErrInvalidCredentials
	}

	if err := s.passwords.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login rejected: password mismatch", "user_id", user.ID)
		s.emit(ctx, events.NewAccountEvent(events.AccountLoginFailed, user.ID, normalized))
		return nil, ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

// ResolvePrincipal loads the live principal for a token subject. Returns
// (nil, nil) if the account no longer exists.
func (s *Service) ResolvePrincipal(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve principal: %w", err)
	}
	return user, nil
}

// DecodeToken verifies a bearer token.
func (s *Service) DecodeToken(ctx context.Context, token string) (*Claims, error) {
	return s.tokens.Decode(ctx, token)
}

func (s *Service) issue(ctx context.Context, user *domain.User) (*Result, error) {
	token, expiresAt, err := s.tokens.Issue(ctx, ClaimsFor(user))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &Result{
		Token:     token,
		ExpiresAt: expiresAt,
		Profile:   user.Profile(),
	}, nil
}

func (s *Service) emit(ctx context.Context, event *events.AccountEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.EmitEvent(ctx, event); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to emit account event",
			"error", err,
			"event_type", event.Type)
	}
}
