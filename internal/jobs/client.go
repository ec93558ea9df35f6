package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// APIClient is the jobs' only view of the CRM service: the public HTTP API.
// Jobs never touch the store directly.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type helloResponse struct {
	Hello string `json:"hello"`
}

func (ac *APIClient) Hello(ctx context.Context) (string, error) {
	var resp helloResponse
	if err := ac.get(ctx, "/api/hello", nil, &resp); err != nil {
		return "", err
	}
	return resp.Hello, nil
}

type RestockedProduct struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

type RestockResult struct {
	UpdatedProducts []RestockedProduct `json:"updated_products"`
	Message         string             `json:"message"`
}

func (ac *APIClient) Restock(ctx context.Context) (*RestockResult, error) {
	var resp RestockResult
	if err := ac.post(ctx, "/api/products/restock", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type OrderCustomer struct {
	Email string `json:"email"`
}

type OrderSummary struct {
	ID        string         `json:"id"`
	OrderDate time.Time      `json:"order_date"`
	Customer  *OrderCustomer `json:"customer"`
}

type ordersResponse struct {
	Orders []OrderSummary `json:"orders"`
}

func (ac *APIClient) OrdersSince(ctx context.Context, since time.Time) ([]OrderSummary, error) {
	params := url.Values{}
	params.Set("order_date_gte", since.Format(time.RFC3339))
	var resp ordersResponse
	if err := ac.get(ctx, "/api/orders", params, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

type ReportTotals struct {
	TotalCustomers int64           `json:"total_customers"`
	TotalOrders    int64           `json:"total_orders"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
}

func (ac *APIClient) Report(ctx context.Context) (*ReportTotals, error) {
	var resp ReportTotals
	if err := ac.get(ctx, "/api/report", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (ac *APIClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := ac.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return ac.do(req, out)
}

func (ac *APIClient) post(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ac.baseURL+path, nil)
	if err != nil {
		return err
	}
	return ac.do(req, out)
}

func (ac *APIClient) do(req *http.Request, out interface{}) error {
	resp, err := ac.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}
