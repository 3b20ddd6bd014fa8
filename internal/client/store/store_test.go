package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paprikasync/internal/client/api"
	"paprikasync/internal/client/models"
	"paprikasync/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeAPI implements the endpoints the data store touches; per-method funcs
// make each test's behavior explicit.
type fakeAPI struct {
	api.API

	categoriesFn func(scope models.Scope) ([]models.Category, error)
	recipesFn    func(scope models.Scope) ([]models.Recipe, error)
	activeFn     func() ([]models.Partner, error)
	pendingFn    func() (*models.PendingPartners, error)
	requestFn    func(code string) (*models.AllPartners, error)
	deleteActFn  func(id int) ([]models.Partner, error)
	deletePendFn func(id int) (*models.PendingPartners, error)
	approveFn    func(id int) (*models.AllPartners, error)
	refreshFn    func() (*models.SyncResult, error)
}

func (f *fakeAPI) Categories(ctx context.Context, scope models.Scope) ([]models.Category, error) {
	return f.categoriesFn(scope)
}

func (f *fakeAPI) Recipes(ctx context.Context, scope models.Scope) ([]models.Recipe, error) {
	return f.recipesFn(scope)
}

func (f *fakeAPI) ActivePartners(ctx context.Context) ([]models.Partner, error) {
	return f.activeFn()
}

func (f *fakeAPI) PendingPartners(ctx context.Context) (*models.PendingPartners, error) {
	return f.pendingFn()
}

func (f *fakeAPI) RequestPartnership(ctx context.Context, code string) (*models.AllPartners, error) {
	return f.requestFn(code)
}

func (f *fakeAPI) DeleteActivePartner(ctx context.Context, id int) ([]models.Partner, error) {
	return f.deleteActFn(id)
}

func (f *fakeAPI) DeletePendingPartner(ctx context.Context, id int) (*models.PendingPartners, error) {
	return f.deletePendFn(id)
}

func (f *fakeAPI) ApprovePendingPartner(ctx context.Context, id int) (*models.AllPartners, error) {
	return f.approveFn(id)
}

func (f *fakeAPI) RefreshPaprika(ctx context.Context) (*models.SyncResult, error) {
	return f.refreshFn()
}

func newStore(f *fakeAPI) *Store {
	return New(f, func() string { return "OWN123" }, testLogger())
}

func recipesNamed(names ...string) []models.Recipe {
	out := make([]models.Recipe, 0, len(names))
	for i, n := range names {
		out = append(out, models.Recipe{ID: i + 1, Name: n})
	}
	return out
}

func TestLoadRecipes_ScopeIsolation(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{recipesFn: func(scope models.Scope) ([]models.Recipe, error) {
		switch scope {
		case models.Self:
			return recipesNamed("own"), nil
		case models.PartnerScope(3):
			return recipesNamed("three"), nil
		case models.PartnerScope(7):
			return recipesNamed("seven"), nil
		}
		return nil, errors.New("unexpected scope")
	}}
	s := newStore(f)

	s.LoadRecipes(ctx, models.Self)
	s.LoadRecipes(ctx, models.PartnerScope(3))

	ownBefore, _ := s.RecipesFor(models.Self)
	threeBefore, _ := s.RecipesFor(models.PartnerScope(3))

	s.LoadRecipes(ctx, models.PartnerScope(7))

	own, ok := s.RecipesFor(models.Self)
	require.True(t, ok)
	assert.Equal(t, ownBefore, own)

	three, ok := s.RecipesFor(models.PartnerScope(3))
	require.True(t, ok)
	assert.Equal(t, threeBefore, three)

	seven, ok := s.RecipesFor(models.PartnerScope(7))
	require.True(t, ok)
	assert.Equal(t, "seven", seven[0].Name)
}

func TestRecipesFor_NotLoadedVsLoadedEmpty(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{recipesFn: func(models.Scope) ([]models.Recipe, error) {
		return nil, nil // server says: loaded, empty
	}}
	s := newStore(f)

	recipes, ok := s.RecipesFor(models.Self)
	assert.False(t, ok, "never loaded must be distinguishable")
	assert.Nil(t, recipes)

	s.LoadRecipes(ctx, models.Self)

	recipes, ok = s.RecipesFor(models.Self)
	assert.True(t, ok, "a successful empty load marks the slot loaded")
	assert.NotNil(t, recipes)
	assert.Empty(t, recipes)
}

func TestLoadRecipes_FailureKeepsStaleData(t *testing.T) {
	ctx := context.Background()
	fail := false
	f := &fakeAPI{recipesFn: func(models.Scope) ([]models.Recipe, error) {
		if fail {
			return nil, errors.New("status 500")
		}
		return recipesNamed("goulash"), nil
	}}
	s := newStore(f)

	s.LoadRecipes(ctx, models.Self)
	fail = true
	s.LoadRecipes(ctx, models.Self)

	recipes, ok := s.RecipesFor(models.Self)
	require.True(t, ok)
	require.Len(t, recipes, 1)
	assert.Equal(t, "goulash", recipes[0].Name)
}

func TestLoadRecipes_FailureWithoutPriorSuccessStaysNotLoaded(t *testing.T) {
	f := &fakeAPI{recipesFn: func(models.Scope) ([]models.Recipe, error) {
		return nil, errors.New("status 500")
	}}
	s := newStore(f)

	s.LoadRecipes(context.Background(), models.Self)

	_, ok := s.RecipesFor(models.Self)
	assert.False(t, ok)
}

func TestLoadCategories_FlattensTree(t *testing.T) {
	f := &fakeAPI{categoriesFn: func(models.Scope) ([]models.Category, error) {
		return []models.Category{
			{UID: "1", Name: "A", Children: []models.Category{{UID: "2", Name: "B"}}},
		}, nil
	}}
	s := newStore(f)

	s.LoadCategories(context.Background(), models.Self)

	assert.Equal(t, map[string]string{"1": "A", "2": "B"}, s.CategoriesFor(models.Self))
}

func TestCategoriesFor_NeverLoadedIsEmptyMap(t *testing.T) {
	s := newStore(&fakeAPI{})
	m := s.CategoriesFor(models.PartnerScope(9))
	assert.NotNil(t, m)
	assert.Empty(t, m)
}

func TestConcurrentSameScopeLoads_LastCompletionWins(t *testing.T) {
	ctx := context.Background()

	type call struct {
		reply chan []models.Category
	}
	calls := make(chan call, 2)

	f := &fakeAPI{categoriesFn: func(models.Scope) ([]models.Category, error) {
		c := call{reply: make(chan []models.Category)}
		calls <- c
		return <-c.reply, nil
	}}
	s := newStore(f)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); s.LoadCategories(ctx, models.Self) }()
	first := <-calls
	go func() { defer wg.Done(); s.LoadCategories(ctx, models.Self) }()
	second := <-calls

	// The later-issued request completes first...
	second.reply <- []models.Category{{UID: "s", Name: "Second"}}
	require.Eventually(t, func() bool {
		return s.CategoriesFor(models.Self)["s"] == "Second"
	}, time.Second, time.Millisecond)

	// ...and the earlier-issued one completes last and wins.
	first.reply <- []models.Category{{UID: "f", Name: "First"}}
	wg.Wait()

	assert.Equal(t, map[string]string{"f": "First"}, s.CategoriesFor(models.Self))
}

func TestRequestPartnership_ServerError(t *testing.T) {
	f := &fakeAPI{
		activeFn:  func() ([]models.Partner, error) { return []models.Partner{{ID: 2, Name: "Grace"}}, nil },
		pendingFn: func() (*models.PendingPartners, error) { return &models.PendingPartners{}, nil },
		requestFn: func(code string) (*models.AllPartners, error) {
			return nil, &api.Error{Code: api.CodeNoSuchUser, Status: 404}
		},
	}
	s := newStore(f)
	ctx := context.Background()
	s.LoadActivePartners(ctx)
	s.LoadPendingPartners(ctx)

	err := s.RequestPartnership(ctx, "bad#1")
	assert.Equal(t, api.CodeNoSuchUser, api.ErrorCode(err))

	// Collections are untouched on failure.
	assert.Len(t, s.ActivePartners(), 1)
	assert.Empty(t, s.PendingPartners().Incoming)
	assert.Empty(t, s.PendingPartners().Outgoing)
}

func TestRequestPartnership_LocalValidation(t *testing.T) {
	called := false
	f := &fakeAPI{requestFn: func(code string) (*models.AllPartners, error) {
		called = true
		return &models.AllPartners{}, nil
	}}
	s := newStore(f)
	ctx := context.Background()

	err := s.RequestPartnership(ctx, "OWN123")
	assert.Equal(t, api.CodeCannotAddSelf, api.ErrorCode(err))

	err = s.RequestPartnership(ctx, "   ")
	assert.Equal(t, api.CodeNoSuchUser, api.ErrorCode(err))

	assert.False(t, called, "local validation must not reach the network")
}

func TestRequestPartnership_SuccessReplacesBothCollections(t *testing.T) {
	f := &fakeAPI{requestFn: func(code string) (*models.AllPartners, error) {
		return &models.AllPartners{
			Active: []models.Partner{{ID: 2, Name: "Grace", RecipeCount: 12}},
			Pending: models.PendingPartners{
				Outgoing: []models.Partner{{ID: 9, Name: "Linus"}},
			},
		}, nil
	}}
	s := newStore(f)

	require.NoError(t, s.RequestPartnership(context.Background(), "XY77"))

	assert.Len(t, s.ActivePartners(), 1)
	assert.Len(t, s.PendingPartners().Outgoing, 1)
}

func TestApprovePendingPartner_MovesEntry(t *testing.T) {
	f := &fakeAPI{
		pendingFn: func() (*models.PendingPartners, error) {
			return &models.PendingPartners{Incoming: []models.Partner{{ID: 5, Name: "Eve"}}}, nil
		},
		approveFn: func(id int) (*models.AllPartners, error) {
			return &models.AllPartners{
				Active:  []models.Partner{{ID: 5, Name: "Eve", RecipeCount: 3}},
				Pending: models.PendingPartners{},
			}, nil
		},
	}
	s := newStore(f)
	ctx := context.Background()
	s.LoadPendingPartners(ctx)

	s.ApprovePendingPartner(ctx, 5)

	assert.Empty(t, s.PendingPartners().Incoming)
	require.Len(t, s.ActivePartners(), 1)
	assert.Equal(t, 3, s.ActivePartners()[0].RecipeCount)
}

func TestDeletePartners_ReplaceFromServer(t *testing.T) {
	f := &fakeAPI{
		deleteActFn: func(id int) ([]models.Partner, error) {
			return []models.Partner{}, nil
		},
		deletePendFn: func(id int) (*models.PendingPartners, error) {
			return &models.PendingPartners{Outgoing: []models.Partner{{ID: 8}}}, nil
		},
	}
	s := newStore(f)
	ctx := context.Background()

	s.DeleteActivePartner(ctx, 2)
	assert.Empty(t, s.ActivePartners())

	s.DeletePendingPartner(ctx, 9)
	assert.Len(t, s.PendingPartners().Outgoing, 1)
}

func TestRefreshPaprika_ReloadsOnlyFlaggedSelfResources(t *testing.T) {
	var catLoads, recipeLoads []models.Scope
	f := &fakeAPI{
		categoriesFn: func(scope models.Scope) ([]models.Category, error) {
			catLoads = append(catLoads, scope)
			return nil, nil
		},
		recipesFn: func(scope models.Scope) ([]models.Recipe, error) {
			recipeLoads = append(recipeLoads, scope)
			return nil, nil
		},
		refreshFn: func() (*models.SyncResult, error) {
			return &models.SyncResult{Categories: true}, nil
		},
	}
	s := newStore(f)
	ctx := context.Background()

	s.RefreshPaprika(ctx)
	assert.Equal(t, []models.Scope{models.Self}, catLoads)
	assert.Empty(t, recipeLoads, "unflagged resources are not reloaded")

	// photos alone refresh the recipe list (photo urls embed content hashes)
	f.refreshFn = func() (*models.SyncResult, error) {
		return &models.SyncResult{Photos: true}, nil
	}
	s.RefreshPaprika(ctx)
	assert.Equal(t, []models.Scope{models.Self}, recipeLoads)
	assert.Len(t, catLoads, 1)
}

func TestRefreshPaprika_FailureLoadsNothing(t *testing.T) {
	f := &fakeAPI{
		refreshFn: func() (*models.SyncResult, error) { return nil, errors.New("status 500") },
	}
	s := newStore(f)

	s.RefreshPaprika(context.Background())

	_, ok := s.RecipesFor(models.Self)
	assert.False(t, ok)
}

func TestPartnerName(t *testing.T) {
	f := &fakeAPI{activeFn: func() ([]models.Partner, error) {
		return []models.Partner{{ID: 7, Name: "Grace"}}, nil
	}}
	s := newStore(f)
	s.LoadActivePartners(context.Background())

	name, ok := s.PartnerName(models.PartnerScope(7))
	assert.True(t, ok)
	assert.Equal(t, "Grace", name)

	_, ok = s.PartnerName(models.Self)
	assert.False(t, ok)

	_, ok = s.PartnerName(models.PartnerScope(8))
	assert.False(t, ok)
}
