package dto

// Request and response bodies of the HTTP surface. Money leaves the system as
// plain JSON numbers; all arithmetic upstream is decimal.

type EmployeeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}

type OrderDetail struct {
	ID              string   `json:"id"`
	OrderNumber     string   `json:"orderNumber"`
	CustomerName    string   `json:"customerName"`
	CustomerEmail   string   `json:"customerEmail,omitempty"`
	ExpectedItems   int      `json:"expectedItems"`
	ItemsReceived   int      `json:"itemsReceived"`
	ItemsDigitized  int      `json:"itemsDigitized"`
	ExtraItems      int      `json:"extraItems"`
	ExtraCharge     float64  `json:"extraCharge"`
	Status          string   `json:"status"`
	InvoiceID       string   `json:"invoiceId,omitempty"`
	InvoicePaid     bool     `json:"invoicePaid"`
	TrackingNumbers []string `json:"trackingNumbers,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	USBCount        int      `json:"usbCount"`
	AssignedTo      string   `json:"assignedTo,omitempty"`
	CreatedAt       string   `json:"createdAt,omitempty"`
}

type WorkQueueResponse struct {
	Orders []OrderDetail `json:"orders"`
}

type TrackingMatch struct {
	OrderNumber  string `json:"orderNumber"`
	CustomerName string `json:"customer"`
}

type CheckInRequest struct {
	ItemsReceived int    `json:"itemsReceived"`
	EmployeeID    string `json:"employeeId"`
	EmployeeName  string `json:"employeeName,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

type InvoiceSummary struct {
	ID        string  `json:"id"`
	HostedURL string  `json:"hostedUrl,omitempty"`
	Amount    float64 `json:"amount"`
}

type CheckInResponse struct {
	Success bool            `json:"success"`
	Order   OrderDetail     `json:"order"`
	Invoice *InvoiceSummary `json:"invoice"`
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

type NotesResponse struct {
	Success bool   `json:"success"`
	Notes   string `json:"notes"`
}

type CompleteRequest struct {
	ItemsDigitized int    `json:"itemsDigitized"`
	EmployeeID     string `json:"employeeId,omitempty"`
}

type PaySummary struct {
	Base    float64 `json:"base"`
	PerItem float64 `json:"perItem"`
	Total   float64 `json:"total"`
}

type CompleteResponse struct {
	Success bool        `json:"success"`
	Order   OrderDetail `json:"order"`
	Pay     PaySummary  `json:"pay"`
}

type PayPeriodResponse struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Status   string  `json:"status"`
	Earnings float64 `json:"earnings"`
}

type PayStats struct {
	TotalOrders   int     `json:"totalOrders"`
	TotalItems    int     `json:"totalItems"`
	TotalEarnings float64 `json:"totalEarnings"`
}

type RecentOrder struct {
	ID            string  `json:"id"`
	OrderNumber   string  `json:"orderNumber"`
	Items         int     `json:"items"`
	Pay           float64 `json:"pay"`
	CompletedDate string  `json:"completedDate,omitempty"`
}

type PayViewResponse struct {
	CurrentPeriod PayPeriodResponse `json:"currentPeriod"`
	Stats         PayStats          `json:"stats"`
	RecentOrders  []RecentOrder     `json:"recentOrders"`
}

type WebhookResponse struct {
	Received bool `json:"received"`
}
