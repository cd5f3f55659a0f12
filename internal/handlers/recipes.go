package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"recipebook/internal/service"

	"github.com/gin-gonic/gin"
)

type recipeRequest struct {
	Title        string `form:"title" json:"title"`
	Description  string `form:"description" json:"description"`
	Ingredients  string `form:"ingredients" json:"ingredients"`
	Instructions string `form:"instructions" json:"instructions"`
}

func (r recipeRequest) toInput() service.RecipeInput {
	return service.RecipeInput{
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
	}
}

// recipeID parses the :id path param. A non-numeric id is treated the
// same as a missing recipe: redirect to the listing.
func (h *Handler) recipeID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.Redirect(http.StatusFound, pathRecipes)
		return 0, false
	}
	return id, true
}

// respondRecipeError maps recipe service errors onto HTTP responses.
// A missing recipe redirects to the listing; an ownership mismatch is a
// hard 403 with no mutation performed.
func (h *Handler) respondRecipeError(c *gin.Context, logKey string, err error) {
	if v, ok := service.AsValidationErrors(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": v})
		return
	}
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		c.Redirect(http.StatusFound, pathRecipes)
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": service.ErrForbidden.Error()})
	default:
		if h.log != nil {
			h.log.Errorw(logKey, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// @Summary      All recipes
// @Tags         recipes
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       / [get]
func (h *Handler) home(c *gin.Context) {
	recipes, err := h.services.ListAll(c.Request.Context())
	if err != nil {
		h.respondRecipeError(c, "recipes_list_all_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// @Summary      Recipes owned by the current user
// @Tags         recipes
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /recipes [get]
func (h *Handler) listOwned(c *gin.Context) {
	userID, _ := currentUserID(c)
	recipes, err := h.services.ListOwned(c.Request.Context(), userID)
	if err != nil {
		h.respondRecipeError(c, "recipes_list_owned_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// @Summary      View a recipe
// @Tags         recipes
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /recipes/{id} [get]
func (h *Handler) viewRecipe(c *gin.Context) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}
	rec, err := h.services.Get(c.Request.Context(), id)
	if err != nil {
		h.respondRecipeError(c, "recipe_view_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": rec})
}

func (h *Handler) createRecipeForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title":  "Create Recipe",
		"fields": []string{"title", "description", "ingredients", "instructions"},
	})
}

// @Summary      Create a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Success      302
// @Failure      400  {object}  map[string]interface{}
// @Router       /recipes/create [post]
func (h *Handler) createRecipe(c *gin.Context) {
	var req recipeRequest
	if !h.bindOrBadRequest(c, &req) {
		return
	}
	userID, _ := currentUserID(c)

	id, err := h.services.Create(c.Request.Context(), userID, req.toInput())
	if err != nil {
		h.respondRecipeError(c, "recipe_create_failed", err)
		return
	}

	if h.log != nil {
		h.log.Infow("recipe_created", "id", id, "owner", userID)
	}
	c.Redirect(http.StatusFound, pathRecipes)
}

// editRecipeForm returns the current recipe so the caller can
// pre-populate the edit form. The ownership gate applies to the form
// too: non-owners get 403 before seeing edit data.
func (h *Handler) editRecipeForm(c *gin.Context) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}
	userID, _ := currentUserID(c)

	rec, err := h.services.Get(c.Request.Context(), id)
	if err != nil {
		h.respondRecipeError(c, "recipe_edit_form_failed", err)
		return
	}
	if rec.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": service.ErrForbidden.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": rec})
}

// @Summary      Edit a recipe (owner only)
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Success      302
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Router       /recipes/{id}/edit [post]
func (h *Handler) editRecipe(c *gin.Context) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}
	var req recipeRequest
	if !h.bindOrBadRequest(c, &req) {
		return
	}
	userID, _ := currentUserID(c)

	if err := h.services.Update(c.Request.Context(), id, userID, req.toInput()); err != nil {
		h.respondRecipeError(c, "recipe_edit_failed", err)
		return
	}
	c.Redirect(http.StatusFound, pathRecipes)
}

// @Summary      Delete a recipe (owner only)
// @Tags         recipes
// @Produce      json
// @Success      302
// @Failure      403  {object}  map[string]string
// @Router       /recipes/{id}/delete [post]
func (h *Handler) deleteRecipe(c *gin.Context) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}
	userID, _ := currentUserID(c)

	if err := h.services.Delete(c.Request.Context(), id, userID); err != nil {
		h.respondRecipeError(c, "recipe_delete_failed", err)
		return
	}
	if h.log != nil {
		h.log.Infow("recipe_deleted", "id", id, "owner", userID)
	}
	c.Redirect(http.StatusFound, pathRecipes)
}
