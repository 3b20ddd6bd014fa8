// Package models defines the wire and domain types exchanged with the
// recipe-synchronization service.
package models

// User is the account record returned by login and who-am-I.
// Token is only populated by endpoints that issue or echo the credential.
type User struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Token       string `json:"token,omitempty"`
	PartnerCode string `json:"partner_code"`
}

// Category is one node of a per-scope category tree. Uids are unique across
// the whole tree.
type Category struct {
	UID      string     `json:"uid"`
	Name     string     `json:"name"`
	Children []Category `json:"children"`
}

// Recipe is the list-endpoint form. Categories holds category uids.
type Recipe struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	PhotoURL   string   `json:"photo_url"`
	Categories []string `json:"categories"`
}

// RecipeDetail is the expanded detail-endpoint form.
type RecipeDetail struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	PhotoURL string     `json:"photo_url"`
	Photos   []string   `json:"photos"`
	Data     RecipeData `json:"data"`
}

// RecipeData carries the recipe body fields of the detail form.
type RecipeData struct {
	Ingredients string   `json:"ingredients"`
	Description string   `json:"description"`
	Directions  string   `json:"directions"`
	Notes       string   `json:"notes"`
	Categories  []string `json:"categories"`
}

// Partner is a counterpart user in one of the relationship collections.
// RecipeCount is only populated for active partners.
type Partner struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	RecipeCount int    `json:"recipe_count,omitempty"`
}

// PendingPartners groups not-yet-mutual requests by direction.
type PendingPartners struct {
	Incoming []Partner `json:"incoming"`
	Outgoing []Partner `json:"outgoing"`
}

// AllPartners is the server's post-mutation snapshot of both collections.
type AllPartners struct {
	Active  []Partner       `json:"active"`
	Pending PendingPartners `json:"pending"`
}

// SyncResult reports which resource classes a remote re-sync changed.
type SyncResult struct {
	Categories bool `json:"categories"`
	Recipes    bool `json:"recipes"`
	Photos     bool `json:"photos"`
}

// FlattenCategories converts a category tree into a flat uid→name mapping.
// Every node of the source tree appears exactly once in the result.
func FlattenCategories(categories []Category) map[string]string {
	out := make(map[string]string)
	var walk func([]Category)
	walk = func(cats []Category) {
		for _, c := range cats {
			out[c.UID] = c.Name
			walk(c.Children)
		}
	}
	walk(categories)
	return out
}
