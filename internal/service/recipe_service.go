package service

import (
	"context"
	"time"

	"recipebook/internal/models"
	"recipebook/internal/repository"
)

// RecipeService implements recipe CRUD with per-resource ownership
// checks on every mutating operation.
type RecipeService struct {
	recipes repository.Recipes
}

func NewRecipeService(recipes repository.Recipes) *RecipeService {
	return &RecipeService{recipes: recipes}
}

var _ Recipes = (*RecipeService)(nil)

// Create inserts a new recipe owned by ownerID.
func (s *RecipeService) Create(ctx context.Context, ownerID int, in RecipeInput) (int, error) {
	if errs := validateRecipe(in); len(errs) > 0 {
		return 0, errs
	}
	now := time.Now().UTC()
	return s.recipes.Create(ctx, models.Recipe{
		UserID:       ownerID,
		Title:        in.Title,
		Description:  in.Description,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// Get fetches a recipe by id. Reads are open to any caller; ownership
// is enforced only on mutations.
func (s *RecipeService) Get(ctx context.Context, id int) (*models.Recipe, error) {
	rec, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrRecipeNotFound
	}
	return rec, nil
}

// ListOwned returns the actor's recipes, newest first.
func (s *RecipeService) ListOwned(ctx context.Context, ownerID int) ([]models.Recipe, error) {
	return s.recipes.ListByOwner(ctx, ownerID)
}

// ListAll returns every recipe, newest first.
func (s *RecipeService) ListAll(ctx context.Context) ([]models.Recipe, error) {
	return s.recipes.ListAll(ctx)
}

// Update rewrites a recipe after the ownership gate passes. The owner
// column itself is never touched.
func (s *RecipeService) Update(ctx context.Context, id, actorID int, in RecipeInput) error {
	if errs := validateRecipe(in); len(errs) > 0 {
		return errs
	}
	rec, err := s.authorize(ctx, id, actorID)
	if err != nil {
		return err
	}
	rec.Title = in.Title
	rec.Description = in.Description
	rec.Ingredients = in.Ingredients
	rec.Instructions = in.Instructions
	rec.UpdatedAt = time.Now().UTC()
	return s.recipes.Update(ctx, *rec)
}

// Delete removes a recipe after the ownership gate passes. Hard delete.
func (s *RecipeService) Delete(ctx context.Context, id, actorID int) error {
	if _, err := s.authorize(ctx, id, actorID); err != nil {
		return err
	}
	return s.recipes.Delete(ctx, id)
}

// authorize fetches the recipe and checks the actor owns it. Returns
// ErrRecipeNotFound for a missing row and ErrForbidden on a mismatch;
// no mutation may happen in either case.
func (s *RecipeService) authorize(ctx context.Context, id, actorID int) (*models.Recipe, error) {
	rec, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrRecipeNotFound
	}
	if rec.UserID != actorID {
		return nil, ErrForbidden
	}
	return rec, nil
}
