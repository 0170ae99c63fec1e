package dto

import (
	"time"

	"github.com/fekuna/omnipos-ledger-service/internal/model"
	"github.com/fekuna/omnipos-ledger-service/internal/notify"
	"github.com/shopspring/decimal"
)

const (
	StatusAll     = "all"
	StatusPending = "pending"
	StatusPaid    = "paid"
)

type CustomerFilters struct {
	Search  string `json:"search" validate:"max=120"`
	Status  string `json:"status" validate:"omitempty,oneof=all pending paid"`
	DueOnly bool   `json:"dueOnly"`
}

type SaleFilters struct {
	CustomerID int64      `json:"customerId,omitempty"`
	SalesmanID int64      `json:"salesmanId,omitempty"`
	From       *time.Time `json:"from,omitempty"`
	To         *time.Time `json:"to,omitempty"`
}

type AdjustmentFilters struct {
	ItemID int64 `json:"itemId" validate:"required"`
}

type ClosingReportInput struct {
	Date time.Time `json:"date"`
}

// Outcome is embedded in every mutation response. Applied is false when the
// target record did not exist and nothing changed.
type Outcome struct {
	Applied      bool                 `json:"applied"`
	Notification *notify.Notification `json:"notification,omitempty"`
}

type SaleOutcome struct {
	Outcome
	Sale *model.SaleRecord `json:"sale,omitempty"`
}

type CustomerOutcome struct {
	Outcome
	Customer *model.Customer `json:"customer,omitempty"`
}

type ItemOutcome struct {
	Outcome
	Item *model.InventoryItem `json:"item,omitempty"`
}

type SalesmanOutcome struct {
	Outcome
	Salesman *model.Salesman `json:"salesman,omitempty"`
}

type PaymentOutcome struct {
	Outcome
	Payment *model.SalesmanPayment `json:"payment,omitempty"`
}

type ExpenseOutcome struct {
	Outcome
	Expense *model.Expense `json:"expense,omitempty"`
}

type SettingsOutcome struct {
	Outcome
	Settings Settings `json:"settings"`
}

type Settings struct {
	BottlePrice decimal.Decimal `json:"bottlePrice"`
}

type CustomerDetail struct {
	Customer   model.Customer     `json:"customer"`
	Sales      []model.SaleRecord `json:"sales"`
	BottleLogs []model.BottleLog  `json:"bottleLogs"`
}

type SalesmanReport struct {
	Salesman          model.Salesman          `json:"salesman"`
	Sales             []model.SaleRecord      `json:"sales"`
	BottlesSold       int                     `json:"bottlesSold"`
	AmountCollected   decimal.Decimal         `json:"amountCollected"`
	Payments          []model.SalesmanPayment `json:"payments"`
	TotalPaid         decimal.Decimal         `json:"totalPaid"`
	AssignedCustomers int                     `json:"assignedCustomers"`
}

type ClosingReport struct {
	Date            time.Time       `json:"date"`
	SalesCount      int             `json:"salesCount"`
	BottlesSold     int             `json:"bottlesSold"`
	SalesReceived   decimal.Decimal `json:"salesReceived"`
	CounterReceived decimal.Decimal `json:"counterReceived"`
	TotalReceived   decimal.Decimal `json:"totalReceived"`
	ExpensesTotal   decimal.Decimal `json:"expensesTotal"`
	Net             decimal.Decimal `json:"net"`
}

type Reminder struct {
	CustomerID int64  `json:"customerId"`
	Message    string `json:"message"`
	URL        string `json:"url"`
}

type CustomerList struct {
	Customers []model.Customer `json:"customers"`
	Total     int              `json:"total"`
}

type SaleList struct {
	Sales []model.SaleRecord `json:"sales"`
	Total int                `json:"total"`
}

type ItemList struct {
	Items []model.InventoryItem `json:"items"`
	Total int                   `json:"total"`
}

type AdjustmentList struct {
	Adjustments []model.StockAdjustment `json:"adjustments"`
	Total       int                     `json:"total"`
}

type SalesmanList struct {
	Salesmen []model.Salesman `json:"salesmen"`
	Total    int              `json:"total"`
}

type ExpenseList struct {
	Expenses []model.Expense `json:"expenses"`
	Total    int             `json:"total"`
}

// Empty is the request type of parameterless calls.
type Empty struct{}
