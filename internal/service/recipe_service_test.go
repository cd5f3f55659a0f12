package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"recipebook/internal/models"
)

// mockRecipesRepo is a lightweight in-test mock for repository.Recipes.
type mockRecipesRepo struct {
	CreateFn      func(r models.Recipe) (int, error)
	GetByIDFn     func(id int) (*models.Recipe, error)
	ListByOwnerFn func(userID int) ([]models.Recipe, error)
	ListAllFn     func() ([]models.Recipe, error)

	createCalls []models.Recipe
	updateCalls []models.Recipe
	deleteCalls []int
}

func (m *mockRecipesRepo) Create(_ context.Context, r models.Recipe) (int, error) {
	m.createCalls = append(m.createCalls, r)
	if m.CreateFn == nil {
		return 1, nil
	}
	return m.CreateFn(r)
}

func (m *mockRecipesRepo) GetByID(_ context.Context, id int) (*models.Recipe, error) {
	if m.GetByIDFn == nil {
		return nil, nil
	}
	return m.GetByIDFn(id)
}

func (m *mockRecipesRepo) ListByOwner(_ context.Context, userID int) ([]models.Recipe, error) {
	if m.ListByOwnerFn == nil {
		return nil, nil
	}
	return m.ListByOwnerFn(userID)
}

func (m *mockRecipesRepo) ListAll(_ context.Context) ([]models.Recipe, error) {
	if m.ListAllFn == nil {
		return nil, nil
	}
	return m.ListAllFn()
}

func (m *mockRecipesRepo) Update(_ context.Context, r models.Recipe) error {
	m.updateCalls = append(m.updateCalls, r)
	return nil
}

func (m *mockRecipesRepo) Delete(_ context.Context, id int) error {
	m.deleteCalls = append(m.deleteCalls, id)
	return nil
}

func validRecipeInput() RecipeInput {
	return RecipeInput{
		Title:        "Soup",
		Description:  "desc",
		Ingredients:  "salt",
		Instructions: "boil",
	}
}

func TestRecipeService_Create_SetsOwnerAndTimestamps(t *testing.T) {
	repo := &mockRecipesRepo{
		CreateFn: func(r models.Recipe) (int, error) { return 3, nil },
	}
	svc := NewRecipeService(repo)

	before := time.Now().UTC()
	id, err := svc.Create(context.Background(), 7, validRecipeInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if id != 3 {
		t.Fatalf("expected id 3, got %d", id)
	}

	if len(repo.createCalls) != 1 {
		t.Fatalf("expected 1 create call, got %d", len(repo.createCalls))
	}
	rec := repo.createCalls[0]
	if rec.UserID != 7 {
		t.Fatalf("expected owner 7, got %d", rec.UserID)
	}
	if rec.CreatedAt.Before(before) || !rec.CreatedAt.Equal(rec.UpdatedAt) {
		t.Fatalf("unexpected timestamps: created=%v updated=%v", rec.CreatedAt, rec.UpdatedAt)
	}
}

func TestRecipeService_Create_ValidationFailures(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*RecipeInput)
		wantField string
	}{
		{"missing title", func(in *RecipeInput) { in.Title = " " }, "title"},
		{"missing ingredients", func(in *RecipeInput) { in.Ingredients = "" }, "ingredients"},
		{"missing instructions", func(in *RecipeInput) { in.Instructions = "" }, "instructions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRecipesRepo{}
			svc := NewRecipeService(repo)

			in := validRecipeInput()
			tt.mutate(&in)

			_, err := svc.Create(context.Background(), 7, in)
			v, ok := AsValidationErrors(err)
			if !ok {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if len(v) != 1 || v[0].Field != tt.wantField {
				t.Fatalf("expected single %q error, got %v", tt.wantField, v)
			}
			if len(repo.createCalls) != 0 {
				t.Fatalf("expected no create calls, got %d", len(repo.createCalls))
			}
		})
	}
}

func TestRecipeService_Create_DescriptionOptional(t *testing.T) {
	repo := &mockRecipesRepo{}
	svc := NewRecipeService(repo)

	in := validRecipeInput()
	in.Description = ""
	if _, err := svc.Create(context.Background(), 7, in); err != nil {
		t.Fatalf("expected empty description to be allowed, got %v", err)
	}
}

func TestRecipeService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := &mockRecipesRepo{
			GetByIDFn: func(id int) (*models.Recipe, error) {
				return &models.Recipe{ID: id, UserID: 7, Title: "Soup"}, nil
			},
		}
		svc := NewRecipeService(repo)

		rec, err := svc.Get(context.Background(), 3)
		if err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
		if rec.ID != 3 || rec.Title != "Soup" {
			t.Fatalf("unexpected recipe: %+v", rec)
		}
	})

	t.Run("missing", func(t *testing.T) {
		svc := NewRecipeService(&mockRecipesRepo{})

		_, err := svc.Get(context.Background(), 404)
		if !errors.Is(err, ErrRecipeNotFound) {
			t.Fatalf("expected ErrRecipeNotFound, got %v", err)
		}
	})
}

func TestRecipeService_Update_OwnershipGate(t *testing.T) {
	owned := &models.Recipe{ID: 3, UserID: 7, Title: "Soup", Ingredients: "salt", Instructions: "boil"}

	t.Run("non-owner is forbidden and nothing changes", func(t *testing.T) {
		repo := &mockRecipesRepo{
			GetByIDFn: func(id int) (*models.Recipe, error) {
				cp := *owned
				return &cp, nil
			},
		}
		svc := NewRecipeService(repo)

		err := svc.Update(context.Background(), 3, 99, validRecipeInput())
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
		if len(repo.updateCalls) != 0 {
			t.Fatalf("expected no update calls, got %d", len(repo.updateCalls))
		}
	})

	t.Run("missing recipe", func(t *testing.T) {
		repo := &mockRecipesRepo{}
		svc := NewRecipeService(repo)

		err := svc.Update(context.Background(), 404, 7, validRecipeInput())
		if !errors.Is(err, ErrRecipeNotFound) {
			t.Fatalf("expected ErrRecipeNotFound, got %v", err)
		}
	})

	t.Run("owner updates, ownership is preserved", func(t *testing.T) {
		repo := &mockRecipesRepo{
			GetByIDFn: func(id int) (*models.Recipe, error) {
				cp := *owned
				return &cp, nil
			},
		}
		svc := NewRecipeService(repo)

		in := RecipeInput{Title: "Soup v2", Ingredients: "salt, pepper", Instructions: "boil longer"}
		if err := svc.Update(context.Background(), 3, 7, in); err != nil {
			t.Fatalf("Update returned error: %v", err)
		}

		if len(repo.updateCalls) != 1 {
			t.Fatalf("expected 1 update call, got %d", len(repo.updateCalls))
		}
		rec := repo.updateCalls[0]
		if rec.Title != "Soup v2" || rec.Ingredients != "salt, pepper" {
			t.Fatalf("unexpected update payload: %+v", rec)
		}
		if rec.UserID != 7 {
			t.Fatalf("owner changed on update: %d", rec.UserID)
		}
	})
}

func TestRecipeService_Delete_OwnershipGate(t *testing.T) {
	owned := &models.Recipe{ID: 3, UserID: 7}

	t.Run("non-owner is forbidden", func(t *testing.T) {
		repo := &mockRecipesRepo{
			GetByIDFn: func(id int) (*models.Recipe, error) {
				cp := *owned
				return &cp, nil
			},
		}
		svc := NewRecipeService(repo)

		err := svc.Delete(context.Background(), 3, 99)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
		if len(repo.deleteCalls) != 0 {
			t.Fatalf("expected no delete calls, got %d", len(repo.deleteCalls))
		}
	})

	t.Run("owner deletes", func(t *testing.T) {
		repo := &mockRecipesRepo{
			GetByIDFn: func(id int) (*models.Recipe, error) {
				cp := *owned
				return &cp, nil
			},
		}
		svc := NewRecipeService(repo)

		if err := svc.Delete(context.Background(), 3, 7); err != nil {
			t.Fatalf("Delete returned error: %v", err)
		}
		if len(repo.deleteCalls) != 1 || repo.deleteCalls[0] != 3 {
			t.Fatalf("unexpected delete calls: %v", repo.deleteCalls)
		}
	})
}
