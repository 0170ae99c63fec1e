package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const CounterSaleCustomerName = "Counter Sale"

type SaleRecord struct {
	ID              int64           `json:"id"`
	CustomerID      int64           `json:"customerId"`
	CustomerName    string          `json:"customerName"`
	BottlesSold     int             `json:"bottlesSold"`
	AmountReceived  decimal.Decimal `json:"amountReceived"`
	BottlesReturned int             `json:"bottlesReturned"`
	Date            time.Time       `json:"date"`
	SalesmanID      *int64          `json:"salesmanId,omitempty"`
	IsCounterSale   bool            `json:"isCounterSale,omitempty"`
	Description     string          `json:"description,omitempty"`
}
