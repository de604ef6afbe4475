package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/domain/models"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/config"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/logger"
)

const defaultBaseURL = "https://api.stripe.com"

// Client wraps the billing provider's REST API (form-encoded requests, JSON
// responses, bearer auth). Built once at startup and injected wherever
// invoicing happens.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	mylog   logger.Logger
}

func NewClient(cfg *config.Billing, mylog logger.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpc:   &http.Client{Timeout: core.WaitTime * time.Second},
		mylog:   mylog.With("adapter", "billing"),
	}
}

type customerJSON struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type customerListJSON struct {
	Data []customerJSON `json:"data"`
}

type invoiceJSON struct {
	ID               string            `json:"id"`
	Status           string            `json:"status"`
	Currency         string            `json:"currency"`
	AmountDue        int64             `json:"amount_due"`
	HostedInvoiceURL string            `json:"hosted_invoice_url"`
	Paid             bool              `json:"paid"`
	Metadata         map[string]string `json:"metadata"`
}

// FindOrCreateCustomer resolves a billing customer by email, creating one on
// first use. Two check-ins for the same email always land on one customer.
func (c *Client) FindOrCreateCustomer(ctx context.Context, email, name, orderNumber string) (models.Customer, error) {
	q := url.Values{}
	q.Set("email", email)
	q.Set("limit", "1")

	var list customerListJSON
	if err := c.get(ctx, "/v1/customers?"+q.Encode(), &list); err != nil {
		return models.Customer{}, err
	}
	if len(list.Data) > 0 {
		found := list.Data[0]
		return models.Customer{ID: found.ID, Email: found.Email, Name: found.Name}, nil
	}

	form := url.Values{}
	form.Set("email", email)
	if name != "" {
		form.Set("name", name)
	}
	if orderNumber != "" {
		form.Set("metadata[order_number]", orderNumber)
	}

	var created customerJSON
	if err := c.postForm(ctx, "/v1/customers", form, &created); err != nil {
		return models.Customer{}, err
	}
	c.mylog.Action("billing_customer_created").Info("Created billing customer", "customer_id", created.ID)
	return models.Customer{ID: created.ID, Email: created.Email, Name: created.Name}, nil
}

// CreateInvoice opens a draft invoice that will be emailed on finalize, due in
// params.DaysUntilDue days.
func (c *Client) CreateInvoice(ctx context.Context, customerID string, params core.InvoiceParams) (models.Invoice, error) {
	form := url.Values{}
	form.Set("customer", customerID)
	form.Set("collection_method", "send_invoice")
	form.Set("days_until_due", strconv.Itoa(params.DaysUntilDue))
	form.Set("metadata[order_number]", params.OrderNumber)
	form.Set("metadata[extra_items]", strconv.Itoa(params.ExtraItems))

	var inv invoiceJSON
	if err := c.postForm(ctx, "/v1/invoices", form, &inv); err != nil {
		return models.Invoice{}, err
	}
	return mapInvoice(inv), nil
}

func (c *Client) AddInvoiceItem(ctx context.Context, customerID, invoiceID string, amountCents int64, description string) error {
	form := url.Values{}
	form.Set("customer", customerID)
	form.Set("invoice", invoiceID)
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", core.InvoiceCurrency)
	form.Set("description", description)

	return c.postForm(ctx, "/v1/invoiceitems", form, &struct{}{})
}

func (c *Client) FinalizeInvoice(ctx context.Context, invoiceID string) (models.Invoice, error) {
	var inv invoiceJSON
	if err := c.postForm(ctx, "/v1/invoices/"+url.PathEscape(invoiceID)+"/finalize", url.Values{}, &inv); err != nil {
		return models.Invoice{}, err
	}
	return mapInvoice(inv), nil
}

func (c *Client) SendInvoice(ctx context.Context, invoiceID string) (models.Invoice, error) {
	var inv invoiceJSON
	if err := c.postForm(ctx, "/v1/invoices/"+url.PathEscape(invoiceID)+"/send", url.Values{}, &inv); err != nil {
		return models.Invoice{}, err
	}
	return mapInvoice(inv), nil
}

func (c *Client) GetInvoice(ctx context.Context, invoiceID string) (models.Invoice, error) {
	var inv invoiceJSON
	if err := c.get(ctx, "/v1/invoices/"+url.PathEscape(invoiceID), &inv); err != nil {
		return models.Invoice{}, err
	}
	return mapInvoice(inv), nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", out)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.do(ctx, http.MethodPost, path, form.Encode(), out)
}

func (c *Client) do(ctx context.Context, method, path, body string, out any) error {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrBillingUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.mylog.Action("billing_request_failed").Error("Billing provider unreachable", err, "method", method, "path", path)
		return fmt.Errorf("%w: %v", core.ErrBillingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.mylog.Action("billing_request_failed").Error(
			"Billing provider returned an error",
			fmt.Errorf("status %d", resp.StatusCode),
			"method", method, "path", path, "body", string(data),
		)
		return fmt.Errorf("%w: status %d", core.ErrBillingUnavailable, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", core.ErrBillingUnavailable, err)
	}
	return nil
}

func mapInvoice(inv invoiceJSON) models.Invoice {
	return models.Invoice{
		ID:        inv.ID,
		Status:    inv.Status,
		Currency:  inv.Currency,
		AmountDue: decimal.New(inv.AmountDue, -2),
		HostedURL: inv.HostedInvoiceURL,
		Paid:      inv.Paid,
	}
}
