package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"storefront/models"
)

// UpstreamError carries the status and body of a failed backend call so
// controllers can surface it as a UI-facing message.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: status=%d body=%s", e.Status, e.Body)
}

// BackendClient is the thin HTTP wrapper around the external commerce
// backend. It attaches bearer tokens, encodes/decodes JSON and maps error
// responses; it implements no protocol of its own.
type BackendClient struct {
	baseURL string
	client  *http.Client
}

func NewBackendClient(baseURL string, timeout time.Duration) *BackendClient {
	return &BackendClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// do performs a JSON request. token may be empty for public endpoints; out
// may be nil when the response body is irrelevant.
func (c *BackendClient) do(ctx context.Context, method, path, token string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		return &UpstreamError{Status: resp.StatusCode, Body: string(data)}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Do performs a raw passthrough request; used by the admin proxy.
func (c *BackendClient) Do(ctx context.Context, method, path string, query url.Values, headers http.Header, body io.Reader) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		for _, vv := range v {
			req.Header.Add(k, vv)
		}
	}
	return c.client.Do(req)
}

// CopyResponse streams an upstream response back to the caller verbatim.
func CopyResponse(w http.ResponseWriter, resp *http.Response) error {
	defer resp.Body.Close()

	for k, v := range resp.Header {
		for _, vv := range v {
			w.Header().Add(k, vv)
		}
	}
	w.WriteHeader(resp.StatusCode)

	_, err := io.Copy(w, resp.Body)
	return err
}

// --- catalog ---

func (c *BackendClient) ListProducts(ctx context.Context, query url.Values) (*models.ProductList, error) {
	var list models.ProductList
	if err := c.do(ctx, http.MethodGet, "/products", "", query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *BackendClient) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), "", nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// --- orders ---

func (c *BackendClient) CreateOrder(ctx context.Context, token string, req *models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", token, nil, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *BackendClient) ListOrders(ctx context.Context, token string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders", token, nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *BackendClient) GetOrder(ctx context.Context, token, id string) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), token, nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// --- reviews ---

func (c *BackendClient) ListReviews(ctx context.Context, productID string) ([]models.Review, error) {
	var reviews []models.Review
	path := "/products/" + url.PathEscape(productID) + "/reviews"
	if err := c.do(ctx, http.MethodGet, path, "", nil, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *BackendClient) CreateReview(ctx context.Context, token, productID string, req *models.CreateReviewRequest) (*models.Review, error) {
	var review models.Review
	path := "/products/" + url.PathEscape(productID) + "/reviews"
	if err := c.do(ctx, http.MethodPost, path, token, nil, req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// --- cart sync ---

// SyncCart reconciles a guest cart with the user's server-side cart after
// login.
func (c *BackendClient) SyncCart(ctx context.Context, token string, items []models.CartSyncItem) error {
	payload := map[string]interface{}{"items": items}
	return c.do(ctx, http.MethodPost, "/cart/sync", token, nil, payload, nil)
}
