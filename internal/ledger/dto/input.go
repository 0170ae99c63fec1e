package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type AddSaleInput struct {
	CustomerID      int64           `json:"customerId" validate:"required"`
	BottlesSold     int             `json:"bottlesSold" validate:"gte=0"`
	AmountReceived  decimal.Decimal `json:"amountReceived" validate:"gte=0"`
	BottlesReturned int             `json:"bottlesReturned" validate:"gte=0"`
	UpdateBalance   bool            `json:"updateBalance"`
	SalesmanID      *int64          `json:"salesmanId,omitempty"`
}

type AddCounterSaleInput struct {
	AmountReceived decimal.Decimal `json:"amountReceived" validate:"gte=0"`
	Description    string          `json:"description" validate:"max=500"`
}

// EditSaleInput replaces the editable fields of a stored sale.
type EditSaleInput struct {
	ID              int64           `json:"id" validate:"required"`
	BottlesSold     int             `json:"bottlesSold" validate:"gte=0"`
	AmountReceived  decimal.Decimal `json:"amountReceived" validate:"gte=0"`
	BottlesReturned int             `json:"bottlesReturned" validate:"gte=0"`
	SalesmanID      *int64          `json:"salesmanId,omitempty"`
	Description     string          `json:"description" validate:"max=500"`
}

type IDInput struct {
	ID int64 `json:"id" validate:"required"`
}

type CustomerProfile struct {
	Name             string `json:"name" validate:"required,max=120"`
	HouseNumber      string `json:"houseNumber" validate:"max=40"`
	Floor            int    `json:"floor" validate:"gte=0"`
	Flat             string `json:"flat" validate:"max=40"`
	Mobile           string `json:"mobile" validate:"required,max=20"`
	SalesmanID       *int64 `json:"salesmanId,omitempty"`
	DailyRequirement *int   `json:"dailyRequirement,omitempty" validate:"omitempty,gte=0"`
}

type CreateCustomerInput struct {
	CustomerProfile
}

type UpdateCustomerInput struct {
	ID int64 `json:"id" validate:"required"`
	CustomerProfile
}

type UpdateScheduleInput struct {
	CustomerID   int64    `json:"customerId" validate:"required"`
	DeliveryDays []string `json:"deliveryDays" validate:"dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
}

type SetEmptyBottlesInput struct {
	CustomerID int64 `json:"customerId" validate:"required"`
	Count      int   `json:"count"`
}

type CreateItemInput struct {
	Name              string `json:"name" validate:"required,max=120"`
	Category          string `json:"category" validate:"max=60"`
	Stock             int    `json:"stock" validate:"gte=0"`
	LowStockThreshold int    `json:"lowStockThreshold" validate:"gte=0"`
	Role              string `json:"role,omitempty" validate:"omitempty,oneof=bottled_water"`
}

// UpdateItemInput changes item metadata. Stock only moves through AdjustStock.
type UpdateItemInput struct {
	ID                int64  `json:"id" validate:"required"`
	Name              string `json:"name" validate:"required,max=120"`
	Category          string `json:"category" validate:"max=60"`
	LowStockThreshold int    `json:"lowStockThreshold" validate:"gte=0"`
	Role              string `json:"role,omitempty" validate:"omitempty,oneof=bottled_water"`
}

type AdjustStockInput struct {
	ItemID         int64  `json:"itemId" validate:"required"`
	NewStock       int    `json:"newStock" validate:"gte=0"`
	QuantityChange int    `json:"quantityChange"`
	Reason         string `json:"reason" validate:"required,max=200"`
	AdjustedBy     string `json:"adjustedBy,omitempty"`
}

type CreateSalesmanInput struct {
	Name     string    `json:"name" validate:"required,max=120"`
	Mobile   string    `json:"mobile" validate:"max=20"`
	HireDate time.Time `json:"hireDate"`
}

type RecordPaymentInput struct {
	SalesmanID int64           `json:"salesmanId" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"gt=0"`
	Date       *time.Time      `json:"date,omitempty"`
}

type CreateExpenseInput struct {
	Date        *time.Time      `json:"date,omitempty"`
	Category    string          `json:"category" validate:"required,max=60"`
	Description string          `json:"description" validate:"max=500"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
}

type UpdateExpenseInput struct {
	ID          int64           `json:"id" validate:"required"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category" validate:"required,max=60"`
	Description string          `json:"description" validate:"max=500"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
}

type SetBottlePriceInput struct {
	Price decimal.Decimal `json:"price" validate:"gt=0"`
}
