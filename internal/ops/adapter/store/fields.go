package store

// Table and field names are the record store's schema: a versioned external
// contract this system reads and writes but does not own. Keep every name
// here so a schema rename is a one-file change.

const (
	tableOrders     = "Orders"
	tableEmployees  = "Employees"
	tablePayPeriods = "Pay Periods"
	tableOrderItems = "Order Items"
)

// Orders table.
const (
	fldOrderNumber    = "Order Number"
	fldCustomer       = "Customer"
	fldCustomerName   = "Customer Name"
	fldCustomerEmail  = "Customer Email"
	fldExpectedItems  = "Expected Items"
	fldItemsReceived  = "Items Received"
	fldItemsDigitized = "Items Digitized"
	fldExtraItems     = "Extra Items"
	fldExtraCharge    = "Extra Charge"
	fldStatus         = "Status"
	fldInvoiceID      = "Invoice ID"
	fldInvoicePaid    = "Invoice Paid"
	fldPaidDate       = "Paid Date"
	fldAssignedTo     = "Assigned To"
	fldAssignedName   = "Assigned To Name"
	fldCompletedBy    = "Completed By"
	fldCompletedName  = "Completed By Name"
	fldCompleted      = "Completed"
	fldCompletedDate  = "Completed Date"
	fldTracking1      = "Tracking Number"
	fldTracking2      = "Tracking Number 2"
	fldTracking3      = "Tracking Number 3"
	fldNotes          = "Notes"
	fldOrderItems     = "Order Items"
	fldPayBase        = "Pay Base"
	fldPayPerItem     = "Pay Per Item"
	fldPayTotal       = "Pay Total"
)

// Employees table.
const (
	fldEmployeeName   = "Name"
	fldEmployeeActive = "Active"
)

// Pay Periods table.
const (
	fldPeriodName   = "Name"
	fldPeriodStatus = "Status"
	fldPeriodStart  = "Start Date"
)

// Order Items table.
const (
	fldItemProduct  = "Product Name"
	fldItemQuantity = "Quantity"
)

// trackingFields are every field a scanned code is matched against.
var trackingFields = []string{fldTracking1, fldTracking2, fldTracking3}
