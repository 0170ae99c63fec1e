package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Table keys used by the key-value store.
const (
	KeyCustomers        = "customers"
	KeySalesmen         = "salesmen"
	KeySales            = "sales"
	KeyExpenses         = "expenses"
	KeyInventory        = "inventory"
	KeyBottleLogs       = "bottleLogs"
	KeySalesmanPayments = "salesmanPayments"
	KeyStockAdjustments = "stockAdjustments"
	KeyBottlePrice      = "bottlePrice"
)

// AllKeys lists every persisted table in load order.
var AllKeys = []string{
	KeyCustomers,
	KeySalesmen,
	KeySales,
	KeyExpenses,
	KeyInventory,
	KeyBottleLogs,
	KeySalesmanPayments,
	KeyStockAdjustments,
	KeyBottlePrice,
}

// DefaultBottlePrice is the seeded price per bottle.
var DefaultBottlePrice = decimal.NewFromInt(200)

// Tables is one consistent snapshot of every ledger table. Transitions take a
// Tables value and return a new one; slices are never shared for writing.
type Tables struct {
	Customers        []Customer
	Salesmen         []Salesman
	Sales            []SaleRecord
	Expenses         []Expense
	Inventory        []InventoryItem
	BottleLogs       []BottleLog
	SalesmanPayments []SalesmanPayment
	StockAdjustments []StockAdjustment
	BottlePrice      decimal.Decimal
}

// Ref returns a pointer to the field stored under key, suitable for
// json.Marshal / json.Unmarshal.
func (t *Tables) Ref(key string) (any, error) {
	switch key {
	case KeyCustomers:
		return &t.Customers, nil
	case KeySalesmen:
		return &t.Salesmen, nil
	case KeySales:
		return &t.Sales, nil
	case KeyExpenses:
		return &t.Expenses, nil
	case KeyInventory:
		return &t.Inventory, nil
	case KeyBottleLogs:
		return &t.BottleLogs, nil
	case KeySalesmanPayments:
		return &t.SalesmanPayments, nil
	case KeyStockAdjustments:
		return &t.StockAdjustments, nil
	case KeyBottlePrice:
		return &t.BottlePrice, nil
	}
	return nil, fmt.Errorf("unknown table key %q", key)
}

// Seed is the dataset used for any table missing from the store.
func Seed() Tables {
	return Tables{
		Customers:        []Customer{},
		Salesmen:         []Salesman{},
		Sales:            []SaleRecord{},
		Expenses:         []Expense{},
		BottleLogs:       []BottleLog{},
		SalesmanPayments: []SalesmanPayment{},
		StockAdjustments: []StockAdjustment{},
		Inventory: []InventoryItem{
			{ID: 1, Name: "19-Liter Water Bottle", Category: "Bottles", Stock: 500, LowStockThreshold: 50, Role: RoleBottledWater},
			{ID: 2, Name: "Bottle Caps", Category: "Supplies", Stock: 1000, LowStockThreshold: 100},
			{ID: 3, Name: "Water Dispenser", Category: "Equipment", Stock: 10, LowStockThreshold: 2},
		},
		BottlePrice: DefaultBottlePrice,
	}
}
