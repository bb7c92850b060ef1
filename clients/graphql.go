package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"storefront/models"
)

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors,omitempty"`
}

// GraphQL posts a query to the backend's /graphql endpoint and decodes the
// data field into out. GraphQL-level errors are returned as a single error.
func (c *BackendClient) GraphQL(ctx context.Context, token, query string, variables map[string]interface{}, out interface{}) error {
	var resp graphqlResponse
	req := graphqlRequest{Query: query, Variables: variables}
	if err := c.do(ctx, http.MethodPost, "/graphql", token, nil, req, &resp); err != nil {
		return err
	}

	if len(resp.Errors) > 0 {
		return fmt.Errorf("graphql error: %s", resp.Errors[0].Message)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(resp.Data, out)
}

const searchProductsQuery = `
query SearchProducts($term: String!, $limit: Int) {
  searchProducts(term: $term, limit: $limit) {
    id
    name
    price
    image
    category
    in_stock
  }
}`

// SearchProducts runs a full-text catalog search through the backend's
// GraphQL endpoint; the REST listing only supports exact filters.
func (c *BackendClient) SearchProducts(ctx context.Context, term string, limit int) ([]models.Product, error) {
	var data struct {
		SearchProducts []models.Product `json:"searchProducts"`
	}
	vars := map[string]interface{}{"term": term, "limit": limit}
	if err := c.GraphQL(ctx, "", searchProductsQuery, vars, &data); err != nil {
		return nil, err
	}
	return data.SearchProducts, nil
}
