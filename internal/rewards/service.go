package rewards

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wastewise/wastewise-backend/pkg/db/models"
	pkgerrors "github.com/wastewise/wastewise-backend/pkg/errors"
)

const (
	// initialPoints seeds every new demo session's balance.
	initialPoints = 1234

	// redemptionsKeep bounds how many redemptions a session retains.
	redemptionsKeep = 20
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service manages green points balances and voucher redemptions.
type Service interface {
	Balance(ctx context.Context, sessionID uuid.UUID) (*BalanceView, error)
	Redeem(ctx context.Context, sessionID uuid.UUID, input RedeemInput) (*BalanceView, error)
	Award(ctx context.Context, sessionID uuid.UUID, points int) (*models.RewardAccount, error)
}

// RedeemInput is one voucher exchange.
type RedeemInput struct {
	RewardName string
	Cost       int
}

// BalanceView is the account plus recent redemptions.
type BalanceView struct {
	Account     models.RewardAccount      `json:"account"`
	Redemptions []models.RewardRedemption `json:"redemptions"`
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a rewards service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rewards repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Balance(ctx context.Context, sessionID uuid.UUID) (*BalanceView, error) {
	account, err := s.loadOrSeed(ctx, s.repo, sessionID)
	if err != nil {
		return nil, err
	}

	redemptions, err := s.repo.FindRedemptions(ctx, sessionID, redemptionsKeep)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading redemptions")
	}

	return &BalanceView{Account: *account, Redemptions: redemptions}, nil
}

func (s *service) Redeem(ctx context.Context, sessionID uuid.UUID, input RedeemInput) (*BalanceView, error) {
	name := strings.TrimSpace(input.RewardName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reward name is required")
	}
	if input.Cost <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reward cost must be positive")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		account, err := s.loadOrSeed(ctx, txRepo, sessionID)
		if err != nil {
			return err
		}
		if account.Points < input.Cost {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "not enough points")
		}

		account.Points -= input.Cost
		if err := txRepo.UpdateAccount(ctx, account); err != nil {
			return err
		}

		if err := txRepo.CreateRedemption(ctx, &models.RewardRedemption{
			ID:         uuid.New(),
			SessionID:  sessionID,
			RewardName: name,
			Cost:       input.Cost,
		}); err != nil {
			return err
		}
		return txRepo.TrimRedemptions(ctx, sessionID, redemptionsKeep)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "redeeming reward")
	}

	return s.Balance(ctx, sessionID)
}

// Award adds points, seeding the account when needed. Called when a
// pickup is booked or an order is placed.
func (s *service) Award(ctx context.Context, sessionID uuid.UUID, points int) (*models.RewardAccount, error) {
	if points <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "points must be positive")
	}

	account, err := s.loadOrSeed(ctx, s.repo, sessionID)
	if err != nil {
		return nil, err
	}

	account.Points += points
	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating balance")
	}
	return account, nil
}

func (s *service) loadOrSeed(ctx context.Context, repo Repository, sessionID uuid.UUID) (*models.RewardAccount, error) {
	account, err := repo.FindAccount(ctx, sessionID)
	switch {
	case err == nil:
		return account, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		fresh := &models.RewardAccount{
			ID:        uuid.New(),
			SessionID: sessionID,
			Points:    initialPoints,
		}
		if err := repo.CreateAccount(ctx, fresh); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "seeding reward account")
		}
		return fresh, nil
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading reward account")
	}
}
