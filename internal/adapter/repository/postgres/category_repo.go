package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/goexpense/internal/domain"
)

const categoryColumns = `id, user_id, mode, name, kind, created_at`

// CategoryRepository implements usecase.CategoryRepository.
type CategoryRepository struct {
	db DBTX
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a category; the name must be unique within the mode.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `INSERT INTO categories (` + categoryColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query, categoryArgs(category)...)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateName
	}

	return err
}

// CreateIfMissing inserts the category unless its name is already taken.
func (r *CategoryRepository) CreateIfMissing(ctx context.Context, category *domain.Category) (bool, error) {
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, mode, name) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query, categoryArgs(category)...)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

// GetByID retrieves a category by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, userID, id string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 AND id = $2`

	category, err := scanCategory(r.db.QueryRow(ctx, query, userID, id))
	if err != nil {
		return nil, notFound(err, domain.ErrCategoryNotFound)
	}

	return category, nil
}

// List lists the categories of one mode in creation order.
func (r *CategoryRepository) List(ctx context.Context, userID string, mode domain.Mode) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 AND mode = $2 ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, userID, string(mode))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// Delete removes a category.
func (r *CategoryRepository) Delete(ctx context.Context, userID, id string) error {
	return execOne(ctx, r.db, domain.ErrCategoryNotFound,
		`DELETE FROM categories WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
}

func categoryArgs(c *domain.Category) []any {
	return []any{
		c.ID,
		c.UserID,
		string(c.Mode),
		c.Name,
		string(c.Kind),
		timeToPgTimestamptz(c.CreatedAt),
	}
}

func scanCategory(row scanner) (*domain.Category, error) {
	var (
		category   domain.Category
		mode, kind string
		createdAt  pgtype.Timestamptz
	)

	if err := row.Scan(&category.ID, &category.UserID, &mode, &category.Name, &kind, &createdAt); err != nil {
		return nil, err
	}

	category.Mode = domain.Mode(mode)
	category.Kind = domain.Direction(kind)
	category.CreatedAt = createdAt.Time

	return &category, nil
}
