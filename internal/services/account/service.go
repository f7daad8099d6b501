package account

import (
	"context"
	"errors"
	"fmt"
	"sync"

	apperrors "antifraud/internal/errors"
	"antifraud/internal/logging"
	"antifraud/internal/models"
	"antifraud/internal/repositories"
	"antifraud/internal/validation"

	"go.uber.org/zap"
)

type service struct {
	repo    repositories.AccountRepository
	hasher  PasswordHasher
	metrics MetricsCollector
	locks   *keyLocker
	logger  *logging.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewService(repo repositories.AccountRepository, hasher PasswordHasher, metrics MetricsCollector) Service {
	if repo == nil {
		panic("repository is required")
	}
	if hasher == nil {
		panic("hasher is required")
	}
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}

	return &service{
		repo:    repo,
		hasher:  hasher,
		metrics: metrics,
		locks:   newKeyLocker(),
		logger:  logging.Global().Named("account"),
	}
}

func (s *service) Register(ctx context.Context, input *models.CreateAccountInput) (*models.AccountResponse, error) {
	if input == nil {
		input = &models.CreateAccountInput{}
	}

	v := validation.New()
	v.AccountRegistration(input)
	if !v.Valid() {
		s.metrics.RecordAccountOperation(OperationRegister, ResultInvalid)
		return nil, apperrors.InvalidAccount(v.FirstError())
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.metrics.RecordAccountOperation(OperationRegister, ResultError)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Name:         input.Name,
		Username:     input.Username,
		PasswordHash: hashed,
	}

	unlock := s.locks.Lock(models.NormalizeUsername(input.Username))
	err = s.repo.Create(ctx, account)
	unlock()

	if err != nil {
		if errors.Is(err, repositories.ErrUsernameTaken) {
			s.metrics.RecordAccountOperation(OperationRegister, ResultConflict)
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUsernameTaken, input.Username)
		}
		s.metrics.RecordAccountOperation(OperationRegister, ResultError)
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.metrics.RecordAccountOperation(OperationRegister, ResultSuccess)
	s.logger.Info("account registered", zap.Uint("id", account.ID), zap.String("username", account.Username))

	resp := account.Response()
	return &resp, nil
}

func (s *service) List(ctx context.Context) ([]models.AccountResponse, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		s.metrics.RecordAccountOperation(OperationList, ResultError)
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	resp := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		resp = append(resp, account.Response())
	}

	s.metrics.RecordAccountOperation(OperationList, ResultSuccess)
	return resp, nil
}

func (s *service) Remove(ctx context.Context, username string) (*models.DeleteAccountResponse, error) {
	unlock := s.locks.Lock(models.NormalizeUsername(username))
	account, err := s.repo.DeleteByUsername(ctx, username)
	unlock()

	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			s.metrics.RecordAccountOperation(OperationRemove, ResultNotFound)
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, username)
		}
		if errors.Is(err, repositories.ErrCacheUnavailable) {
			s.metrics.RecordAccountOperation(OperationRemove, ResultUnavailable)
			return nil, fmt.Errorf("%w: %v", apperrors.ErrDirectoryUnavailable, err)
		}
		s.metrics.RecordAccountOperation(OperationRemove, ResultError)
		return nil, fmt.Errorf("failed to delete account: %w", err)
	}

	s.metrics.RecordAccountOperation(OperationRemove, ResultSuccess)
	s.logger.Info("account removed", zap.Uint("id", account.ID), zap.String("username", account.Username))

	return &models.DeleteAccountResponse{
		Username: account.Username,
		Status:   models.AccountStatusDeleted,
	}, nil
}

func (s *service) Verify(ctx context.Context, username, password string) bool {
	var account *models.Account
	var err error
	if username != "" {
		unlock := s.locks.Lock(models.NormalizeUsername(username))
		account, err = s.repo.GetByUsername(ctx, username)
		unlock()
	} else {
		err = repositories.ErrAccountNotFound
	}

	if err != nil {
		if !errors.Is(err, repositories.ErrAccountNotFound) {
			s.logger.Warn("credential lookup failed", zap.String("username", username), zap.Error(err))
		}
		// Spend the same bcrypt work as a real comparison.
		s.hasher.Verify(password, s.fallbackHash())
		s.metrics.RecordAccountOperation(OperationVerify, ResultFailure)
		return false
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		s.metrics.RecordAccountOperation(OperationVerify, ResultFailure)
		return false
	}

	s.metrics.RecordAccountOperation(OperationVerify, ResultSuccess)
	return true
}

func (s *service) fallbackHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("antifraud-unknown-account")
		if err != nil {
			s.logger.Error("failed to build fallback hash", zap.Error(err))
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
