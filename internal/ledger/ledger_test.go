package ledger

import (
	"strconv"
	"time"

	"github.com/fekuna/omnipos-ledger-service/internal/model"
	"github.com/shopspring/decimal"
)

// seqIDs hands out ids from 1000 up so they never clash with fixture ids.
type seqIDs struct{ next int64 }

func (s *seqIDs) NextID() int64 {
	if s.next < 1000 {
		s.next = 1000
	}
	s.next++
	return s.next
}

// Monday.
var testNow = time.Date(2024, time.March, 4, 10, 30, 0, 0, time.UTC)

func testParams() Params {
	return Params{BottlePrice: decimal.NewFromInt(200), Now: testNow, IDs: &seqIDs{}}
}

func int64Ptr(v int64) *int64 { return &v }

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// fixture builds a fresh snapshot on every call so tests can compare an input
// against an untouched copy.
func fixture(stock int) model.Tables {
	return model.Tables{
		Customers: []model.Customer{
			{ID: 5, Name: "Aslam", Mobile: "03001234567", TotalBalance: decimal.Zero, DeliveryDays: []string{"Monday"}},
			{ID: 6, Name: "Bilal", Mobile: "03007654321", TotalBalance: dec(400), BottlesPurchased: 12, DeliveryDays: []string{}, SalesmanID: int64Ptr(40)},
		},
		Salesmen: []model.Salesman{
			{ID: 40, Name: "Kamran", Mobile: "03110000000", HireDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
		Sales: []model.SaleRecord{
			{ID: 90, CustomerID: 6, CustomerName: "Bilal", BottlesSold: 2, AmountReceived: dec(400), BottlesReturned: 1, Date: testNow.Add(-24 * time.Hour), SalesmanID: int64Ptr(40)},
		},
		Expenses: []model.Expense{},
		Inventory: []model.InventoryItem{
			{ID: 1, Name: "19-Liter Water Bottle", Category: "Bottles", Stock: stock, LowStockThreshold: 5, Role: model.RoleBottledWater},
			{ID: 2, Name: "Bottle Caps", Category: "Supplies", Stock: 100, LowStockThreshold: 10},
		},
		BottleLogs: []model.BottleLog{
			{ID: 91, CustomerID: 6, Date: testNow.Add(-24 * time.Hour), BottlesTaken: 2, BottlesReturned: 1},
		},
		SalesmanPayments: []model.SalesmanPayment{},
		StockAdjustments: []model.StockAdjustment{
			{ID: 92, ItemID: 1, Date: testNow.Add(-24 * time.Hour), QuantityChange: -2, StockAfter: stock, Reason: "Sale to Bilal", AdjustedBy: AdjustedBySystem},
		},
		BottlePrice: dec(200),
	}
}

func customerByID(t model.Tables, id int64) model.Customer {
	for _, c := range t.Customers {
		if c.ID == id {
			return c
		}
	}
	return model.Customer{}
}

func bottledStock(t model.Tables) int {
	return t.Inventory[BottledWaterIndex(t.Inventory)].Stock
}

func formatID(id int64) string { return strconv.FormatInt(id, 10) }
