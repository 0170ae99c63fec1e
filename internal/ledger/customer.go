package ledger

import (
	"slices"

	"github.com/fekuna/omnipos-ledger-service/internal/ledger/dto"
	"github.com/fekuna/omnipos-ledger-service/internal/model"
	"github.com/shopspring/decimal"
)

// AddCustomer appends a customer with every ledger field zeroed.
func AddCustomer(t model.Tables, in *dto.CreateCustomerInput, p Params) (Change, *model.Customer) {
	cust := model.Customer{
		ID:           p.IDs.NextID(),
		DeliveryDays: []string{},
		TotalBalance: decimal.Zero,
	}
	applyProfile(&cust, &in.CustomerProfile)

	ch := newChange(t)
	ch.Tables.Customers = appendCopy(t.Customers, cust)
	ch.touch(model.KeyCustomers)
	return ch, &cust
}

// UpdateCustomer rewrites profile fields only; the ledger fields are kept.
func UpdateCustomer(t model.Tables, in *dto.UpdateCustomerInput) (Change, *model.Customer, error) {
	ci := customerIndex(t.Customers, in.ID)
	if ci < 0 {
		return Change{}, nil, notFound("customer", in.ID)
	}
	cust := t.Customers[ci]
	applyProfile(&cust, &in.CustomerProfile)

	ch := newChange(t)
	ch.Tables.Customers = replaceAt(t.Customers, ci, cust)
	ch.touch(model.KeyCustomers)
	return ch, &cust, nil
}

func applyProfile(c *model.Customer, p *dto.CustomerProfile) {
	c.Name = p.Name
	c.HouseNumber = p.HouseNumber
	c.Floor = p.Floor
	c.Flat = p.Flat
	c.Mobile = p.Mobile
	c.SalesmanID = p.SalesmanID
	c.DailyRequirement = p.DailyRequirement
}

// DeleteCustomer hard-deletes a customer with their sales and bottle logs.
// Nothing those sales did to stock or balances is reversed.
func DeleteCustomer(t model.Tables, customerID int64) (Change, *model.Customer, error) {
	ci := customerIndex(t.Customers, customerID)
	if ci < 0 {
		return Change{}, nil, notFound("customer", customerID)
	}
	cust := t.Customers[ci]

	ch := newChange(t)
	ch.Tables.Customers = removeWhere(t.Customers, func(c model.Customer) bool { return c.ID == customerID })
	ch.Tables.Sales = removeWhere(t.Sales, func(s model.SaleRecord) bool {
		return !s.IsCounterSale && s.CustomerID == customerID
	})
	ch.Tables.BottleLogs = removeWhere(t.BottleLogs, func(l model.BottleLog) bool { return l.CustomerID == customerID })
	ch.touch(model.KeyCustomers, model.KeySales, model.KeyBottleLogs)
	return ch, &cust, nil
}

func UpdateSchedule(t model.Tables, in *dto.UpdateScheduleInput, p Params) (Change, *model.Customer, error) {
	ci := customerIndex(t.Customers, in.CustomerID)
	if ci < 0 {
		return Change{}, nil, notFound("customer", in.CustomerID)
	}
	cust := t.Customers[ci]
	cust.DeliveryDays = slices.Clone(in.DeliveryDays)
	if cust.DeliveryDays == nil {
		cust.DeliveryDays = []string{}
	}
	cust.DeliveryDueToday = cust.DeliversOn(p.Now.Weekday())

	ch := newChange(t)
	ch.Tables.Customers = replaceAt(t.Customers, ci, cust)
	ch.touch(model.KeyCustomers)
	return ch, &cust, nil
}

// SetEmptyBottles overrides the empties count after a physical recount.
func SetEmptyBottles(t model.Tables, in *dto.SetEmptyBottlesInput) (Change, *model.Customer, error) {
	ci := customerIndex(t.Customers, in.CustomerID)
	if ci < 0 {
		return Change{}, nil, notFound("customer", in.CustomerID)
	}
	cust := t.Customers[ci]
	cust.EmptyBottlesOnHand = in.Count

	ch := newChange(t)
	ch.Tables.Customers = replaceAt(t.Customers, ci, cust)
	ch.touch(model.KeyCustomers)
	return ch, &cust, nil
}

// RefreshDeliveryDue recomputes DeliveryDueToday for every customer. The
// customers table is only touched when at least one flag flips.
func RefreshDeliveryDue(t model.Tables, p Params) (Change, int) {
	ch := newChange(t)
	day := p.Now.Weekday()

	var out []model.Customer
	changed := 0
	for i, c := range t.Customers {
		due := c.DeliversOn(day)
		if due == c.DeliveryDueToday {
			continue
		}
		if out == nil {
			out = slices.Clone(t.Customers)
		}
		out[i].DeliveryDueToday = due
		changed++
	}
	if changed > 0 {
		ch.Tables.Customers = out
		ch.touch(model.KeyCustomers)
	}
	return ch, changed
}
