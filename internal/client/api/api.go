// Package api implements the remote collaborator of the client: an HTTP JSON
// client for the recipe-synchronization service. It attaches the bearer token
// when one is set and maps non-success responses to errors; interpreting a
// failure (surface vs. keep stale data) is the caller's business.
package api

import (
	"context"

	"paprikasync/internal/client/models"
)

// API is the operation surface of the remote service consumed by the session
// and partner data stores.
type API interface {
	// Login exchanges credentials for a user record carrying the token.
	Login(ctx context.Context, email, password string) (*models.User, error)

	// Me returns the owner of the currently attached token.
	Me(ctx context.Context) (*models.User, error)

	// UpdateProfile changes the display name and returns the updated record.
	UpdateProfile(ctx context.Context, name string) (*models.User, error)

	// Categories returns the category tree for the given scope.
	Categories(ctx context.Context, scope models.Scope) ([]models.Category, error)

	// Recipes returns the recipe list for the given scope.
	Recipes(ctx context.Context, scope models.Scope) ([]models.Recipe, error)

	// Recipe returns the expanded form of a single recipe.
	Recipe(ctx context.Context, scope models.Scope, id int) (*models.RecipeDetail, error)

	ActivePartners(ctx context.Context) ([]models.Partner, error)
	PendingPartners(ctx context.Context) (*models.PendingPartners, error)

	// RequestPartnership sends a partner code and returns the resulting
	// active+pending snapshot.
	RequestPartnership(ctx context.Context, partnerCode string) (*models.AllPartners, error)

	// DeleteActivePartner removes a mutual partner and returns the updated
	// active collection.
	DeleteActivePartner(ctx context.Context, id int) ([]models.Partner, error)

	// DeletePendingPartner cancels or rejects a pending request and returns
	// the updated pending collections.
	DeletePendingPartner(ctx context.Context, id int) (*models.PendingPartners, error)

	// ApprovePendingPartner accepts an incoming request and returns the
	// resulting active+pending snapshot.
	ApprovePendingPartner(ctx context.Context, id int) (*models.AllPartners, error)

	// RefreshPaprika triggers a remote full re-sync and reports which
	// resource classes changed.
	RefreshPaprika(ctx context.Context) (*models.SyncResult, error)

	// SetToken attaches the bearer token to subsequent requests.
	SetToken(token string)

	// ClearToken detaches the bearer token.
	ClearToken()
}
