package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"paprikasync/internal/client/models"
	"paprikasync/internal/common"
	"paprikasync/internal/textx"
)

// OpenRecipeList enters the recipe list view for scope. Entering is a new
// navigation: the view gets a fresh key and starts at the top even if the
// same scope was open before. Data already cached for the scope is not
// refetched.
func (a *App) OpenRecipeList(ctx context.Context, scope models.Scope) {
	if !scope.IsSelf() {
		if _, ok := a.store.PartnerName(scope); !ok {
			a.store.LoadActivePartners(ctx)
		}
		if _, ok := a.store.PartnerName(scope); !ok {
			fmt.Fprintf(a.out, "No active partner with id %d.\n", scope.PartnerID())
			return
		}
	}

	if _, loaded := a.store.RecipesFor(scope); !loaded {
		a.store.LoadRecipes(ctx, scope)
		a.store.LoadCategories(ctx, scope)
	}

	a.scope = scope
	a.navKey = uuid.NewString()
	a.offset = 0
	a.filter = ""

	// A fresh navigation has no recorded position; arriving still consults
	// the cache so restored entries behave the same as new ones.
	if pos, ok := a.scroll.Arrive(a.navKey); ok {
		a.offset = pos.Y
	}
	a.renderRecipeList()
}

// Search filters the current recipe list by name, diacritic- and
// case-insensitively. Every word of the filter must match somewhere in the
// name. An empty filter clears the search. Filtering resets paging.
func (a *App) Search(filter string) {
	if a.navKey == "" {
		fmt.Fprintln(a.out, "Open a recipe list first ('recipes').")
		return
	}
	a.filter = filter
	a.offset = 0
	a.renderRecipeList()
}

// More shows the next page of the current list.
func (a *App) More() {
	if a.navKey == "" {
		fmt.Fprintln(a.out, "Open a recipe list first ('recipes').")
		return
	}
	if a.offset+pageSize >= len(a.visibleRecipes()) {
		fmt.Fprintln(a.out, "No more recipes.")
		return
	}
	a.offset += pageSize
	a.renderRecipeList()
}

// ShowRecipe leaves the list view for the detail view, recording the list
// position so 'back' can restore it.
func (a *App) ShowRecipe(ctx context.Context, id int) {
	if a.navKey == "" {
		fmt.Fprintln(a.out, "Open a recipe list first ('recipes').")
		return
	}
	a.scroll.Leave(a.navKey, 0, a.offset)

	detail, err := a.api.Recipe(ctx, a.scope, id)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			fmt.Fprintf(a.out, "No recipe with id %d.\n", id)
		case errors.Is(err, common.ErrUnavailable):
			fmt.Fprintln(a.out, "Server unavailable, try again later.")
		default:
			fmt.Fprintf(a.out, "Could not fetch recipe: %v\n", err)
		}
		return
	}

	a.renderRecipeDetail(detail)
}

// Back returns to the list view, restoring the recorded position for the
// current navigation entry. Without one the list starts at the top.
func (a *App) Back() {
	if a.navKey == "" {
		fmt.Fprintln(a.out, "Nothing to go back to.")
		return
	}
	a.offset = 0
	if pos, ok := a.scroll.Arrive(a.navKey); ok {
		a.offset = pos.Y
	}
	a.renderRecipeList()
}

// ShowCategories prints the flat category list of the current scope.
func (a *App) ShowCategories(ctx context.Context) {
	scope := a.scope
	if a.navKey == "" {
		scope = models.Self
	}
	if len(a.store.CategoriesFor(scope)) == 0 {
		a.store.LoadCategories(ctx, scope)
	}
	categories := a.store.CategoriesFor(scope)
	if len(categories) == 0 {
		fmt.Fprintln(a.out, "No categories.")
		return
	}
	fmt.Fprintf(a.out, "Categories (%s):\n", a.scopeLabel(scope))
	for uid, name := range categories {
		fmt.Fprintf(a.out, "  %-10s %s\n", uid, name)
	}
}

// visibleRecipes applies the current filter to the current scope's list.
func (a *App) visibleRecipes() []models.Recipe {
	recipes, _ := a.store.RecipesFor(a.scope)
	if a.filter == "" {
		return recipes
	}
	filtered := make([]models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if textx.SmartContains(r.Name, a.filter) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func (a *App) renderRecipeList() {
	recipes, loaded := a.store.RecipesFor(a.scope)
	if !loaded {
		fmt.Fprintln(a.out, "Recipes are not available right now, try again later.")
		return
	}

	if len(recipes) == 0 {
		if a.scope.IsSelf() {
			fmt.Fprintln(a.out, "You do not have any recipes yet.")
		} else {
			name, _ := a.store.PartnerName(a.scope)
			fmt.Fprintf(a.out, "%s does not have any recipes yet.\n", name)
		}
		return
	}

	visible := a.visibleRecipes()
	if len(visible) == 0 {
		fmt.Fprintln(a.out, "No recipes match your filter.")
		return
	}
	if a.offset >= len(visible) {
		a.offset = 0
	}

	fmt.Fprintf(a.out, "Recipes (%s):\n", a.scopeLabel(a.scope))
	categories := a.store.CategoriesFor(a.scope)
	end := a.offset + pageSize
	if end > len(visible) {
		end = len(visible)
	}
	for _, r := range visible[a.offset:end] {
		fmt.Fprintf(a.out, "  [%d] %s%s\n", r.ID, r.Name, categorySuffix(r.Categories, categories))
	}
	fmt.Fprintf(a.out, "Showing %d-%d of %d", a.offset+1, end, len(visible))
	if a.filter != "" {
		fmt.Fprintf(a.out, " matching %q", a.filter)
	}
	fmt.Fprintln(a.out)
}

func (a *App) renderRecipeDetail(detail *models.RecipeDetail) {
	fmt.Fprintf(a.out, "%s (id %d)\n", detail.Name, detail.ID)
	if suffix := categorySuffix(detail.Data.Categories, a.store.CategoriesFor(a.scope)); suffix != "" {
		fmt.Fprintf(a.out, "Categories:%s\n", strings.TrimPrefix(suffix, " "))
	}
	if detail.Data.Description != "" {
		fmt.Fprintf(a.out, "\n%s\n", detail.Data.Description)
	}
	if detail.Data.Ingredients != "" {
		fmt.Fprintf(a.out, "\nIngredients:\n%s\n", detail.Data.Ingredients)
	}
	if detail.Data.Directions != "" {
		fmt.Fprintf(a.out, "\nDirections:\n%s\n", detail.Data.Directions)
	}
	if detail.Data.Notes != "" {
		fmt.Fprintf(a.out, "\nNotes:\n%s\n", detail.Data.Notes)
	}
	if len(detail.Photos) > 0 {
		fmt.Fprintf(a.out, "\nPhotos:\n")
		for _, p := range detail.Photos {
			fmt.Fprintf(a.out, "  %s\n", p)
		}
	}
	fmt.Fprintln(a.out, "\nType 'back' to return to the list.")
}

func (a *App) scopeLabel(scope models.Scope) string {
	if scope.IsSelf() {
		return "yours"
	}
	if name, ok := a.store.PartnerName(scope); ok {
		return name
	}
	return scope.String()
}

// categorySuffix renders a recipe's category uids as " (Name, Name)" using
// the scope's uid→name mapping. Uids the mapping does not know are skipped.
func categorySuffix(uids []string, names map[string]string) string {
	resolved := make([]string, 0, len(uids))
	for _, uid := range uids {
		if name, ok := names[uid]; ok {
			resolved = append(resolved, name)
		}
	}
	if len(resolved) == 0 {
		return ""
	}
	return " (" + strings.Join(resolved, ", ") + ")"
}
