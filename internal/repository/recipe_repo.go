package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"recipebook/internal/models"
)

type RecipeRepository struct {
	db *sql.DB
}

func NewRecipeRepository(db *sql.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

var _ Recipes = (*RecipeRepository)(nil)

const (
	insertRecipeSQL = `
		INSERT INTO recipes (user_id, title, description, ingredients, instructions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	selectRecipeByIDSQL = `
		SELECT id, user_id, title, description, ingredients, instructions, created_at, updated_at
		FROM recipes WHERE id = ?
	`

	selectRecipesByOwnerSQL = `
		SELECT id, user_id, title, description, ingredients, instructions, created_at, updated_at
		FROM recipes WHERE user_id = ? ORDER BY created_at DESC
	`

	selectAllRecipesSQL = `
		SELECT id, user_id, title, description, ingredients, instructions, created_at, updated_at
		FROM recipes ORDER BY created_at DESC
	`

	// user_id is deliberately absent from the SET list: ownership is
	// immutable after creation.
	updateRecipeSQL = `
		UPDATE recipes SET title = ?, description = ?, ingredients = ?, instructions = ?, updated_at = ?
		WHERE id = ?
	`

	deleteRecipeSQL = `DELETE FROM recipes WHERE id = ?`
)

// Create inserts a new recipe and returns its ID.
func (r *RecipeRepository) Create(ctx context.Context, rec models.Recipe) (int, error) {
	res, err := r.db.ExecContext(ctx, insertRecipeSQL,
		rec.UserID,
		rec.Title,
		rec.Description,
		rec.Ingredients,
		rec.Instructions,
		rec.CreatedAt.UTC(),
		rec.UpdatedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert recipe %q: %w", rec.Title, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for recipe %q: %w", rec.Title, err)
	}
	return int(lastID), nil
}

// GetByID fetches a recipe by id. Returns (nil, nil) if not found.
func (r *RecipeRepository) GetByID(ctx context.Context, id int) (*models.Recipe, error) {
	var rec models.Recipe
	err := r.db.QueryRowContext(ctx, selectRecipeByIDSQL, id).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Title,
		&rec.Description,
		&rec.Ingredients,
		&rec.Instructions,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select recipe %d: %w", id, err)
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	return &rec, nil
}

// ListByOwner returns the owner's recipes, newest first.
func (r *RecipeRepository) ListByOwner(ctx context.Context, userID int) ([]models.Recipe, error) {
	return r.list(ctx, selectRecipesByOwnerSQL, userID)
}

// ListAll returns every recipe, newest first.
func (r *RecipeRepository) ListAll(ctx context.Context) ([]models.Recipe, error) {
	return r.list(ctx, selectAllRecipesSQL)
}

func (r *RecipeRepository) list(ctx context.Context, query string, args ...any) ([]models.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Recipe
	for rows.Next() {
		var rec models.Recipe
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.Title,
			&rec.Description,
			&rec.Ingredients,
			&rec.Instructions,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan recipe row: %w", err)
		}
		rec.CreatedAt = rec.CreatedAt.UTC()
		rec.UpdatedAt = rec.UpdatedAt.UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipe rows: %w", err)
	}
	return out, nil
}

// Update rewrites the mutable columns of a single recipe row.
func (r *RecipeRepository) Update(ctx context.Context, rec models.Recipe) error {
	res, err := r.db.ExecContext(ctx, updateRecipeSQL,
		rec.Title,
		rec.Description,
		rec.Ingredients,
		rec.Instructions,
		rec.UpdatedAt.UTC(),
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("update recipe %d: %w", rec.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for recipe %d: %w", rec.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("update recipe %d: %w", rec.ID, sql.ErrNoRows)
	}
	return nil
}

// Delete removes a recipe row. Hard delete, no recovery.
func (r *RecipeRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deleteRecipeSQL, id); err != nil {
		return fmt.Errorf("delete recipe %d: %w", id, err)
	}
	return nil
}
