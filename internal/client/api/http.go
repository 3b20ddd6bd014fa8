package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"paprikasync/internal/client/models"
	"paprikasync/internal/common"
)

// HTTPClient is the transport seam; *http.Client satisfies it.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks HTTP JSON to the service. The token is held on the client, so
// the session layer attaches it once and every later call carries it.
type Client struct {
	baseURL string
	client  HTTPClient

	mu    sync.RWMutex
	token string
}

// NewClient builds a Client for the service at baseURL (no trailing slash).
func NewClient(c HTTPClient, baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  c,
	}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) ClearToken() {
	c.SetToken("")
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do issues one request and decodes the success body into out (skipped when
// out is nil). Non-2xx responses become *Error when the body carries a domain
// error code, and sentinel errors from the common package otherwise.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	var body *bytes.Buffer
	if payload != nil {
		body = &bytes.Buffer{}
		if err := json.NewEncoder(body).Encode(payload); err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, u, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, u, nil)
	}
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return c.decodeError(res)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) decodeError(res *http.Response) error {
	var apiErr Error
	if err := json.NewDecoder(res.Body).Decode(&apiErr); err == nil && apiErr.Code != "" {
		apiErr.Status = res.StatusCode
		return &apiErr
	}
	switch res.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return common.ErrUnauthorized
	case http.StatusNotFound:
		return common.ErrNotFound
	}
	return fmt.Errorf("unexpected status %d", res.StatusCode)
}

func scopeQuery(scope models.Scope) url.Values {
	if scope.IsSelf() {
		return nil
	}
	return url.Values{"partner_id": []string{strconv.Itoa(scope.PartnerID())}}
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	payload := map[string]string{"email": email, "password": password}
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/api/user/login", nil, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/user/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, name string) (*models.User, error) {
	payload := map[string]string{"name": name}
	var user models.User
	if err := c.do(ctx, http.MethodPatch, "/api/user/me", nil, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Categories(ctx context.Context, scope models.Scope) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/api/paprika/categories", scopeQuery(scope), nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) Recipes(ctx context.Context, scope models.Scope) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := c.do(ctx, http.MethodGet, "/api/paprika/recipes", scopeQuery(scope), nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (c *Client) Recipe(ctx context.Context, scope models.Scope, id int) (*models.RecipeDetail, error) {
	var recipe models.RecipeDetail
	path := "/api/paprika/recipes/" + strconv.Itoa(id)
	if err := c.do(ctx, http.MethodGet, path, scopeQuery(scope), nil, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (c *Client) ActivePartners(ctx context.Context) ([]models.Partner, error) {
	var partners []models.Partner
	if err := c.do(ctx, http.MethodGet, "/api/user/partners/active", nil, nil, &partners); err != nil {
		return nil, err
	}
	return partners, nil
}

func (c *Client) PendingPartners(ctx context.Context) (*models.PendingPartners, error) {
	var pending models.PendingPartners
	if err := c.do(ctx, http.MethodGet, "/api/user/partners/pending", nil, nil, &pending); err != nil {
		return nil, err
	}
	return &pending, nil
}

func (c *Client) RequestPartnership(ctx context.Context, partnerCode string) (*models.AllPartners, error) {
	payload := map[string]string{"partner_code": partnerCode}
	var all models.AllPartners
	if err := c.do(ctx, http.MethodPost, "/api/user/partners/pending", nil, payload, &all); err != nil {
		return nil, err
	}
	return &all, nil
}

func (c *Client) DeleteActivePartner(ctx context.Context, id int) ([]models.Partner, error) {
	var partners []models.Partner
	path := "/api/user/partners/active/" + strconv.Itoa(id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, &partners); err != nil {
		return nil, err
	}
	return partners, nil
}

func (c *Client) DeletePendingPartner(ctx context.Context, id int) (*models.PendingPartners, error) {
	var pending models.PendingPartners
	path := "/api/user/partners/pending/" + strconv.Itoa(id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, &pending); err != nil {
		return nil, err
	}
	return &pending, nil
}

func (c *Client) ApprovePendingPartner(ctx context.Context, id int) (*models.AllPartners, error) {
	var all models.AllPartners
	path := "/api/user/partners/pending/" + strconv.Itoa(id)
	if err := c.do(ctx, http.MethodPut, path, nil, nil, &all); err != nil {
		return nil, err
	}
	return &all, nil
}

func (c *Client) RefreshPaprika(ctx context.Context) (*models.SyncResult, error) {
	var result models.SyncResult
	if err := c.do(ctx, http.MethodPost, "/api/user/refresh-paprika", nil, struct{}{}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
