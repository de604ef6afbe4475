package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Assignee is the employee reference stored on an order. Newer schema
// revisions store a linked record id, older rows only carry a display name.
// The id is authoritative; the name is a legacy fallback matched
// case-insensitively.
type Assignee struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

func (a Assignee) IsZero() bool {
	return a.ID == "" && a.Name == ""
}

func (a Assignee) Matches(employeeID, employeeName string) bool {
	if a.ID != "" {
		return a.ID == employeeID
	}
	if a.Name == "" || employeeName == "" {
		return false
	}
	return strings.EqualFold(a.Name, employeeName)
}

// Order is a row of the record store's Orders table. Every field is owned by
// the store; this struct is a fetched-fresh snapshot, never a cache.
type Order struct {
	ID              string          `json:"id"`
	CreatedAt       time.Time       `json:"created_at"`
	OrderNumber     string          `json:"order_number"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	ExpectedItems   int             `json:"expected_items"`
	ItemsReceived   int             `json:"items_received"`
	ItemsDigitized  int             `json:"items_digitized"`
	ExtraItems      int             `json:"extra_items"`
	ExtraCharge     decimal.Decimal `json:"extra_charge"`
	Status          string          `json:"status"`
	InvoiceID       string          `json:"invoice_id,omitempty"`
	InvoicePaid     bool            `json:"invoice_paid"`
	PaidDate        *time.Time      `json:"paid_date,omitempty"`
	AssignedTo      Assignee        `json:"assigned_to"`
	CompletedBy     Assignee        `json:"completed_by"`
	Completed       bool            `json:"completed"`
	CompletedDate   *time.Time      `json:"completed_date,omitempty"`
	TrackingNumbers []string        `json:"tracking_numbers"`
	Notes           string          `json:"notes"`
	OrderItemIDs    []string        `json:"order_item_ids,omitempty"`
	USBCount        int             `json:"usb_count"`
	Pay             Pay             `json:"pay"`
}

// OrderItem is a linked line of an order, used to detect special product
// add-ons by name.
type OrderItem struct {
	ID          string `json:"id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

type Employee struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type PayPeriod struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"start_date"`
}

// Pay is the digitization payout for one order: flat base plus a per-item
// rate. Persisted on the order so the stored value and the reported value can
// never diverge.
type Pay struct {
	Base    decimal.Decimal `json:"base"`
	PerItem decimal.Decimal `json:"per_item"`
	Total   decimal.Decimal `json:"total"`
}

type Customer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Invoice struct {
	ID        string          `json:"id"`
	Status    string          `json:"status"`
	Currency  string          `json:"currency"`
	AmountDue decimal.Decimal `json:"amount_due"`
	HostedURL string          `json:"hosted_url"`
	Paid      bool            `json:"paid"`
}

// TrackingMatch is one candidate of an ambiguous tracking lookup.
type TrackingMatch struct {
	OrderNumber  string `json:"order_number"`
	CustomerName string `json:"customer"`
}

// BillingEvent is a verified webhook event from the billing provider.
type BillingEvent struct {
	ID          string
	Type        string
	InvoiceID   string
	OrderNumber string
	Metadata    map[string]string
}
