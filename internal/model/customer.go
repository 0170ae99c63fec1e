package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	HouseNumber      string   `json:"houseNumber"`
	Floor            int      `json:"floor"`
	Flat             string   `json:"flat"`
	Mobile           string   `json:"mobile"`
	SalesmanID       *int64   `json:"salesmanId,omitempty"`
	DailyRequirement *int     `json:"dailyRequirement,omitempty"`
	DeliveryDays     []string `json:"deliveryDays"`
	DeliveryDueToday bool     `json:"deliveryDueToday"`

	// Ledger-owned fields.
	BottlesPurchased   int             `json:"bottlesPurchased"`
	PaidBottles        int             `json:"paidBottles"`
	TotalBalance       decimal.Decimal `json:"totalBalance"`
	EmptyBottlesOnHand int             `json:"emptyBottlesOnHand"`
}

// UnpaidBottles never reports a negative count.
func (c Customer) UnpaidBottles() int {
	if n := c.BottlesPurchased - c.PaidBottles; n > 0 {
		return n
	}
	return 0
}

func (c Customer) DeliversOn(day time.Weekday) bool {
	for _, d := range c.DeliveryDays {
		if d == day.String() {
			return true
		}
	}
	return false
}

// BottleLog is an append-only record of bottles taken and returned.
type BottleLog struct {
	ID              int64     `json:"id"`
	CustomerID      int64     `json:"customerId"`
	Date            time.Time `json:"date"`
	BottlesTaken    int       `json:"bottlesTaken"`
	BottlesReturned int       `json:"bottlesReturned"`
}
