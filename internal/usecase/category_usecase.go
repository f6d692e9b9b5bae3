package usecase

import (
	"context"
	"strings"

	"github.com/iho/goexpense/internal/domain"
)

// CategoryUseCase manages the two category namespaces of a user.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
	recordRepo   RecordRepository
	idGen        IDGenerator
	clock        Clock
}

// NewCategoryUseCase creates a new CategoryUseCase.
func NewCategoryUseCase(categoryRepo CategoryRepository, recordRepo RecordRepository, idGen IDGenerator, clock Clock) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		recordRepo:   recordRepo,
		idGen:        idGen,
		clock:        clock,
	}
}

// EnsureDefaultCategories seeds the default list of mode. Categories that
// already exist are kept, so calling it again is harmless. Returns how many
// categories were added.
func (uc *CategoryUseCase) EnsureDefaultCategories(ctx context.Context, userID, mode string) (int, error) {
	m, err := domain.ParseMode(mode)
	if err != nil {
		return 0, err
	}

	created := 0
	now := uc.clock.Now()
	for _, d := range domain.DefaultCategories(m) {
		inserted, err := uc.categoryRepo.CreateIfMissing(ctx, &domain.Category{
			ID:        uc.idGen.Generate(),
			UserID:    userID,
			Mode:      m,
			Name:      d.Name,
			Kind:      d.Kind,
			CreatedAt: now,
		})
		if err != nil {
			return created, storeError("seed category", err)
		}
		if inserted {
			created++
		}
	}

	return created, nil
}

// ListCategories lists categories of mode, optionally only those of one kind.
func (uc *CategoryUseCase) ListCategories(ctx context.Context, userID, mode, kind string) ([]*domain.Category, error) {
	m, err := domain.ParseMode(mode)
	if err != nil {
		return nil, err
	}

	categories, err := uc.categoryRepo.List(ctx, userID, m)
	if err != nil {
		return nil, err
	}

	// An empty namespace is seeded on first access.
	if len(categories) == 0 {
		if _, err := uc.EnsureDefaultCategories(ctx, userID, mode); err != nil {
			return nil, err
		}
		if categories, err = uc.categoryRepo.List(ctx, userID, m); err != nil {
			return nil, err
		}
	}

	if kind == "" {
		return categories, nil
	}

	k, err := domain.ParseDirection(kind)
	if err != nil {
		return nil, err
	}

	filtered := make([]*domain.Category, 0, len(categories))
	for _, c := range categories {
		if c.Kind == k {
			filtered = append(filtered, c)
		}
	}

	return filtered, nil
}

// CreateCategoryInput represents input for creating a category.
type CreateCategoryInput struct {
	UserID string
	Mode   string
	Name   string
	Kind   string
}

// CreateCategory adds a category. Names are unique per namespace.
func (uc *CategoryUseCase) CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	category := &domain.Category{
		ID:        uc.idGen.Generate(),
		UserID:    input.UserID,
		Mode:      domain.Mode(input.Mode),
		Name:      strings.TrimSpace(input.Name),
		Kind:      domain.Direction(input.Kind),
		CreatedAt: uc.clock.Now(),
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}
	if err := domain.ValidateText("name", category.Name, domain.MaxCategoryNameLength); err != nil {
		return nil, err
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, storeError("create category", err)
	}

	return category, nil
}

// DeleteCategory deletes a category that no record of its namespace uses.
func (uc *CategoryUseCase) DeleteCategory(ctx context.Context, userID, id string) error {
	category, err := uc.categoryRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	n, err := uc.recordRepo.CountByCategory(ctx, userID, category.Mode, category.Name)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrCategoryInUse
	}

	if err := uc.categoryRepo.Delete(ctx, userID, id); err != nil {
		return storeError("delete category", err)
	}

	return nil
}
