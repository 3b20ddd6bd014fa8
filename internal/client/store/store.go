// Package store holds the partner-scoped data cache: category mappings and
// recipe lists per scope, plus the partner relationship collections. Loads
// replace a slot only on success; a failed load leaves the last good data in
// place and is never surfaced, except for RequestPartnership.
package store

import (
	"context"
	"strings"
	"sync"

	"paprikasync/internal/client/api"
	"paprikasync/internal/client/models"
	"paprikasync/internal/logging"
)

// Store caches remote data per scope. It is root-owned: a load that
// completes after the view that started it has gone away still applies.
type Store struct {
	api     api.API
	log     logging.Logger
	ownCode func() string // session's partner code, for the self-partnering check

	mu         sync.Mutex
	categories map[models.Scope]map[string]string
	recipes    map[models.Scope][]models.Recipe

	// Per-scope apply generations. Same-scope concurrent loads race and the
	// one completing last wins; the generation records how many loads have
	// been applied so the ordering is explicit rather than incidental.
	categoriesGen map[models.Scope]uint64
	recipesGen    map[models.Scope]uint64

	partners []models.Partner
	pending  models.PendingPartners
}

// New builds an empty store. ownCode supplies the session's partner code and
// may return "" while anonymous.
func New(apiClient api.API, ownCode func() string, log logging.Logger) *Store {
	return &Store{
		api:           apiClient,
		log:           log,
		ownCode:       ownCode,
		categories:    make(map[models.Scope]map[string]string),
		recipes:       make(map[models.Scope][]models.Recipe),
		categoriesGen: make(map[models.Scope]uint64),
		recipesGen:    make(map[models.Scope]uint64),
	}
}

// LoadCategories fetches the category tree for scope and replaces its cache
// slot with the flattened uid→name mapping. On failure the slot is left
// untouched; the caller retries by calling again.
func (s *Store) LoadCategories(ctx context.Context, scope models.Scope) {
	categories, err := s.api.Categories(ctx, scope)
	if err != nil {
		s.log.Warn(ctx, "loading categories failed", "scope", scope, "error", err)
		return
	}
	flat := models.FlattenCategories(categories)

	s.mu.Lock()
	s.categories[scope] = flat
	s.categoriesGen[scope]++
	s.mu.Unlock()
	s.log.Debug(ctx, "categories loaded", "scope", scope, "count", len(flat))
}

// LoadRecipes fetches the recipe list for scope and replaces its cache slot.
// A scope whose load has never succeeded stays "not yet loaded".
func (s *Store) LoadRecipes(ctx context.Context, scope models.Scope) {
	recipes, err := s.api.Recipes(ctx, scope)
	if err != nil {
		s.log.Warn(ctx, "loading recipes failed", "scope", scope, "error", err)
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}

	s.mu.Lock()
	s.recipes[scope] = recipes
	s.recipesGen[scope]++
	s.mu.Unlock()
	s.log.Debug(ctx, "recipes loaded", "scope", scope, "count", len(recipes))
}

// CategoriesFor returns the flattened mapping cached for scope. A scope that
// has never loaded yields an empty map.
func (s *Store) CategoriesFor(scope models.Scope) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.categories[scope]; ok {
		return m
	}
	return map[string]string{}
}

// RecipesFor returns scope's cached recipe list and whether it has loaded at
// all: (nil, false) means never loaded, an empty list with true means loaded
// and empty.
func (s *Store) RecipesFor(scope models.Scope) ([]models.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recipes, ok := s.recipes[scope]
	return recipes, ok
}

// LoadActivePartners replaces the active collection wholesale on success.
func (s *Store) LoadActivePartners(ctx context.Context) {
	partners, err := s.api.ActivePartners(ctx)
	if err != nil {
		s.log.Warn(ctx, "loading active partners failed", "error", err)
		return
	}
	s.mu.Lock()
	s.partners = partners
	s.mu.Unlock()
}

// LoadPendingPartners replaces both pending collections wholesale on success.
func (s *Store) LoadPendingPartners(ctx context.Context) {
	pending, err := s.api.PendingPartners(ctx)
	if err != nil {
		s.log.Warn(ctx, "loading pending partners failed", "error", err)
		return
	}
	s.mu.Lock()
	s.pending = *pending
	s.mu.Unlock()
}

// RequestPartnership sends a partner code. It is the one mutation whose
// failure reaches the caller: the returned error carries the domain code
// (no_such_user, cannot_add_self, or a passthrough) for the view to render.
// Self-partnering and blank codes are rejected before any network call.
// On success both collections are replaced from the server's snapshot.
func (s *Store) RequestPartnership(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return &api.Error{Code: api.CodeNoSuchUser}
	}
	if own := s.ownCode(); own != "" && code == own {
		return &api.Error{Code: api.CodeCannotAddSelf}
	}

	all, err := s.api.RequestPartnership(ctx, code)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.partners = all.Active
	s.pending = all.Pending
	s.mu.Unlock()
	return nil
}

// DeleteActivePartner removes a mutual partner. The active collection is
// replaced with the server-returned state, never filtered locally.
func (s *Store) DeleteActivePartner(ctx context.Context, id int) {
	partners, err := s.api.DeleteActivePartner(ctx, id)
	if err != nil {
		s.log.Warn(ctx, "deleting active partner failed", "id", id, "error", err)
		return
	}
	s.mu.Lock()
	s.partners = partners
	s.mu.Unlock()
}

// DeletePendingPartner cancels an outgoing or rejects an incoming request.
func (s *Store) DeletePendingPartner(ctx context.Context, id int) {
	pending, err := s.api.DeletePendingPartner(ctx, id)
	if err != nil {
		s.log.Warn(ctx, "deleting pending partner failed", "id", id, "error", err)
		return
	}
	s.mu.Lock()
	s.pending = *pending
	s.mu.Unlock()
}

// ApprovePendingPartner accepts an incoming request; the entry moves from
// pending-incoming to active, so both collections are replaced atomically.
func (s *Store) ApprovePendingPartner(ctx context.Context, id int) {
	all, err := s.api.ApprovePendingPartner(ctx, id)
	if err != nil {
		s.log.Warn(ctx, "approving pending partner failed", "id", id, "error", err)
		return
	}
	s.mu.Lock()
	s.partners = all.Active
	s.pending = all.Pending
	s.mu.Unlock()
}

// RefreshPaprika triggers a remote full re-sync and reloads only the
// self-scope resources the response marks as changed. Photo changes affect
// the recipe list (photo urls embed content hashes). Partner caches refresh
// only through the partner's own sync.
func (s *Store) RefreshPaprika(ctx context.Context) {
	result, err := s.api.RefreshPaprika(ctx)
	if err != nil {
		s.log.Warn(ctx, "remote re-sync failed", "error", err)
		return
	}
	if result.Categories {
		s.LoadCategories(ctx, models.Self)
	}
	if result.Recipes || result.Photos {
		s.LoadRecipes(ctx, models.Self)
	}
}

// ActivePartners returns the active collection.
func (s *Store) ActivePartners() []models.Partner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.partners
}

// PendingPartners returns the pending collections.
func (s *Store) PendingPartners() models.PendingPartners {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// PartnerName resolves a partner scope to the partner's name via the active
// collection; ("", false) when the scope is self or unknown.
func (s *Store) PartnerName(scope models.Scope) (string, bool) {
	if scope.IsSelf() {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.partners {
		if p.ID == scope.PartnerID() {
			return p.Name, true
		}
	}
	return "", false
}
