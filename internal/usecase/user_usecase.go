package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/finances/internal/domain"
	"github.com/iho/finances/internal/infrastructure/metrics"
)

// UserUseCase handles user registration and authentication.
type UserUseCase struct {
	userRepo UserRepository
	metrics  *metrics.Metrics
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(userRepo UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// WithMetrics instruments authentication attempts.
func (uc *UserUseCase) WithMetrics(m *metrics.Metrics) *UserUseCase {
	uc.metrics = m
	return uc
}

// RegisterInput represents input for registering a user.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// Register creates a new user with a bcrypt-hashed password.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:             uuid.NewString(),
		Email:          input.Email,
		Name:           input.Name,
		HashedPassword: hashedPassword,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return sanitizeUser(user), nil
}

// AuthenticateInput represents authentication input.
type AuthenticateInput struct {
	Email    string
	Password string
}

// Authenticate verifies user credentials.
func (uc *UserUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, uc.authFailure()
	}

	if user == nil || !user.Active {
		return nil, uc.authFailure()
	}

	if err := verifyPassword(user.HashedPassword, input.Password); err != nil {
		return nil, uc.authFailure()
	}

	if uc.metrics != nil {
		uc.metrics.AuthAttempts.WithLabelValues("success").Inc()
	}

	return sanitizeUser(user), nil
}

func (uc *UserUseCase) authFailure() error {
	if uc.metrics != nil {
		uc.metrics.AuthAttempts.WithLabelValues("failure").Inc()
	}

	return domain.ErrUnauthorized
}

// GetUser retrieves a user by ID.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return sanitizeUser(user), nil
}

// sanitizeUser returns a copy with the password hash stripped, so stored
// state is never mutated.
func sanitizeUser(user *domain.User) *domain.User {
	sanitized := *user
	sanitized.HashedPassword = ""
	return &sanitized
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

func verifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
