package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/iho/goexpense/internal/domain"
)

// SetupUseCase prepares a new user's ledger.
type SetupUseCase struct {
	categories *CategoryUseCase
	accounts   *AccountUseCase
	logger     zerolog.Logger
}

// NewSetupUseCase creates a new SetupUseCase.
func NewSetupUseCase(categories *CategoryUseCase, accounts *AccountUseCase, logger zerolog.Logger) *SetupUseCase {
	return &SetupUseCase{
		categories: categories,
		accounts:   accounts,
		logger:     logger,
	}
}

// BootstrapResult reports what Bootstrap created.
type BootstrapResult struct {
	CategoriesCreated int
	Account           *domain.Account
}

// Bootstrap seeds both category namespaces and creates a default account when
// the user has none. Safe to call repeatedly.
func (uc *SetupUseCase) Bootstrap(ctx context.Context, userID string) (*BootstrapResult, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	result := &BootstrapResult{}
	for _, mode := range []domain.Mode{domain.ModePersonal, domain.ModeBusiness} {
		n, err := uc.categories.EnsureDefaultCategories(ctx, userID, string(mode))
		if err != nil {
			return nil, err
		}
		result.CategoriesCreated += n
	}

	list, err := uc.accounts.ListAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(list.Accounts) == 0 {
		account, err := uc.accounts.CreateAccount(ctx, CreateAccountInput{
			UserID: userID,
			Name:   DefaultAccountName,
		})
		if err != nil {
			return nil, err
		}
		result.Account = account
	}

	uc.logger.Info().
		Str("user_id", userID).
		Int("categories_created", result.CategoriesCreated).
		Bool("account_created", result.Account != nil).
		Msg("user bootstrapped")

	return result, nil
}
