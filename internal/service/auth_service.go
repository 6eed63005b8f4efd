package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Stewz00/doc-analysis-api/internal/credentials"
	"github.com/Stewz00/doc-analysis-api/internal/interfaces"
	"github.com/Stewz00/doc-analysis-api/internal/logging"
	"github.com/Stewz00/doc-analysis-api/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrValidation         = errors.New("email and password are required")
	ErrPasswordTooLong    = fmt.Errorf("password must be at most %d bytes", credentials.MaxPasswordBytes)
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token has expired")
)

const (
	DefaultTokenExpiry = 24 * time.Hour
	DefaultIssuer      = "doc-analysis-api"
)

type AuthService struct {
	store       interfaces.CredentialStore
	jwtSecret   []byte
	issuer      string
	tokenExpiry time.Duration
	logger      logging.Logger
	now         func() time.Time
}

type Option func(*AuthService)

// WithTokenExpiry sets how long issued tokens stay valid. Non-positive
// values are ignored.
func WithTokenExpiry(d time.Duration) Option {
	return func(s *AuthService) {
		if d > 0 {
			s.tokenExpiry = d
		}
	}
}

// WithIssuer sets the iss claim written to and required of tokens.
func WithIssuer(issuer string) Option {
	return func(s *AuthService) {
		if issuer != "" {
			s.issuer = issuer
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(s *AuthService) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewAuthService creates a new authentication service
func NewAuthService(store interfaces.CredentialStore, jwtSecret string, opts ...Option) *AuthService {
	s := &AuthService{
		store:       store,
		jwtSecret:   []byte(jwtSecret),
		issuer:      DefaultIssuer,
		tokenExpiry: DefaultTokenExpiry,
		logger:      logging.Discard(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterInput carries the fields accepted by Register.
type RegisterInput struct {
	Email    string
	Password string
	FullName *string
}

// Register creates a new user account. It fails with ErrValidation when the
// email or password is blank, ErrPasswordTooLong when bcrypt cannot hash the
// password and ErrEmailTaken when the email is already registered.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return ErrValidation
	}
	if len(in.Password) > credentials.MaxPasswordBytes {
		return ErrPasswordTooLong
	}

	id, err := s.store.Create(ctx, in.Email, in.Password, in.FullName)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", id.String())
	return nil
}

// Login authenticates a user and returns a signed JWT. An unknown email and
// a wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return "", fmt.Errorf("find user: %w", err)
	}

	// user is nil when not found; VerifyPassword still does the hash work.
	if !s.store.VerifyPassword(user, password) {
		s.logger.Debug(ctx, "login rejected")
		return "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID.String())
	return token, nil
}

func (s *AuthService) issueToken(userID uuid.UUID) (string, error) {
	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    s.issuer,
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExpiry)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// ValidateToken validates a JWT token and returns its claims
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
