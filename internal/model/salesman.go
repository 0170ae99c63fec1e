package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Salesman struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Mobile   string    `json:"mobile"`
	HireDate time.Time `json:"hireDate"`
}

type SalesmanPayment struct {
	ID         int64           `json:"id"`
	SalesmanID int64           `json:"salesmanId"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
}

type Expense struct {
	ID          int64           `json:"id"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}
