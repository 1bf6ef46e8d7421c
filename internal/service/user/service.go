// Package user implements the user store: account creation with a salted
// password hash, lookup by email, and password verification.
package user

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"webauth/internal/model"
	"webauth/internal/repository"
	"webauth/internal/util"
	"webauth/pkg/logger"
	pkgutil "webauth/pkg/util"
)

var (
	// ErrDuplicateEmail is returned by Create when the pre-insert check finds
	// the email already registered.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrNotFound is returned by FindByEmail when no user matches.
	ErrNotFound = errors.New("user not found")
	// ErrStorage wraps every unexpected database failure.
	ErrStorage = errors.New("storage error")
)

// Repository is the persistence the service needs.
type Repository interface {
	CreateUser(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type Service struct {
	userRepo   Repository
	bcryptCost int
	logger     *zap.Logger
}

func NewService(userRepo Repository, bcryptCost int, logger *zap.Logger) *Service {
	return &Service{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Create registers a user and returns the id assigned by storage.
//
// The existence check and the insert are not atomic: two concurrent signups
// for one email can both pass the check. The UNIQUE constraint on
// users.email rejects the second insert, which surfaces as ErrStorage.
func (s *Service) Create(ctx context.Context, name, email, password string) (int64, error) {
	exists, err := s.ExistsByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrDuplicateEmail
	}

	hash, err := util.HashPassword(password, s.bcryptCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.CreateUser(ctx, u); err != nil {
		log := logger.WithTrace(ctx, s.logger)
		if pkgutil.IsUniqueViolation(err) {
			log.Warn("unique constraint rejected concurrent signup", zap.Error(err))
		}
		return 0, s.storageError(ctx, "create user", err)
	}

	return u.ID, nil
}

// FindByEmail returns the stored record, including the password hash.
func (s *Service) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, s.storageError(ctx, "find user", err)
	}
	return u, nil
}

// ExistsByEmail is a best-effort check used to report duplicates early.
func (s *Service) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return false, s.storageError(ctx, "check email", err)
	}
	return exists, nil
}

// VerifyPassword reports whether plaintext matches hash.
func (s *Service) VerifyPassword(plaintext, hash string) bool {
	return util.CheckPassword(plaintext, hash)
}

func (s *Service) storageError(ctx context.Context, op string, err error) error {
	logger.WithTrace(ctx, s.logger).Error("storage failure",
		zap.String("op", op),
		zap.String("class", pkgutil.ClassifyDBError(err)),
		zap.Error(err),
	)
	return fmt.Errorf("%s: %w", op, ErrStorage)
}
