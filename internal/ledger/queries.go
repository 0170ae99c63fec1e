package ledger

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-ledger-service/internal/ledger/dto"
	"github.com/fekuna/omnipos-ledger-service/internal/model"
	"github.com/shopspring/decimal"
)

// FilterCustomers returns matching customers, newest id first. Search matches
// name, mobile, balance or bottles purchased.
func FilterCustomers(customers []model.Customer, f *dto.CustomerFilters) []model.Customer {
	q := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]model.Customer, 0, len(customers))
	for _, c := range customers {
		if f.DueOnly && !c.DeliveryDueToday {
			continue
		}
		switch f.Status {
		case dto.StatusPending:
			if !c.TotalBalance.IsPositive() {
				continue
			}
		case dto.StatusPaid:
			if c.TotalBalance.IsPositive() {
				continue
			}
		}
		if q != "" && !customerMatches(c, q) {
			continue
		}
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b model.Customer) int { return cmp.Compare(b.ID, a.ID) })
	return out
}

func customerMatches(c model.Customer, q string) bool {
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(c.Mobile, q) ||
		strings.Contains(c.TotalBalance.String(), q) ||
		strings.Contains(strconv.Itoa(c.BottlesPurchased), q)
}

func FindCustomer(t *model.Tables, id int64) (model.Customer, error) {
	i := customerIndex(t.Customers, id)
	if i < 0 {
		return model.Customer{}, notFound("customer", id)
	}
	return t.Customers[i], nil
}

func CustomerDetail(t *model.Tables, id int64) (*dto.CustomerDetail, error) {
	c, err := FindCustomer(t, id)
	if err != nil {
		return nil, err
	}
	logs := filter(t.BottleLogs, func(l model.BottleLog) bool { return l.CustomerID == id })
	return &dto.CustomerDetail{
		Customer:   c,
		Sales:      FilterSales(t.Sales, &dto.SaleFilters{CustomerID: id}),
		BottleLogs: logs,
	}, nil
}

// FilterSales keeps stored order. From is inclusive, To exclusive.
func FilterSales(sales []model.SaleRecord, f *dto.SaleFilters) []model.SaleRecord {
	return filter(sales, func(s model.SaleRecord) bool {
		if f.CustomerID != 0 && (s.IsCounterSale || s.CustomerID != f.CustomerID) {
			return false
		}
		if f.SalesmanID != 0 && (s.SalesmanID == nil || *s.SalesmanID != f.SalesmanID) {
			return false
		}
		if f.From != nil && s.Date.Before(*f.From) {
			return false
		}
		if f.To != nil && !s.Date.Before(*f.To) {
			return false
		}
		return true
	})
}

func LowStock(items []model.InventoryItem) []model.InventoryItem {
	return filter(items, model.InventoryItem.IsLowStock)
}

func AdjustmentsFor(adjustments []model.StockAdjustment, itemID int64) []model.StockAdjustment {
	return filter(adjustments, func(a model.StockAdjustment) bool { return a.ItemID == itemID })
}

func SalesmanReport(t *model.Tables, salesmanID int64) (*dto.SalesmanReport, error) {
	i := indexByID(t.Salesmen, salesmanID, func(s model.Salesman) int64 { return s.ID })
	if i < 0 {
		return nil, notFound("salesman", salesmanID)
	}

	payments := filter(t.SalesmanPayments, func(p model.SalesmanPayment) bool { return p.SalesmanID == salesmanID })
	r := &dto.SalesmanReport{
		Salesman:        t.Salesmen[i],
		Sales:           FilterSales(t.Sales, &dto.SaleFilters{SalesmanID: salesmanID}),
		AmountCollected: decimal.Zero,
		Payments:        payments,
		TotalPaid:       decimal.Zero,
	}
	for _, s := range r.Sales {
		r.BottlesSold += s.BottlesSold
		r.AmountCollected = r.AmountCollected.Add(s.AmountReceived)
	}
	for _, p := range r.Payments {
		r.TotalPaid = r.TotalPaid.Add(p.Amount)
	}
	for _, c := range t.Customers {
		if c.SalesmanID != nil && *c.SalesmanID == salesmanID {
			r.AssignedCustomers++
		}
	}
	return r, nil
}

// ClosingReport totals the calendar day containing day, in day's location.
func ClosingReport(t *model.Tables, day time.Time) *dto.ClosingReport {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	within := func(d time.Time) bool { return !d.Before(start) && d.Before(end) }

	r := &dto.ClosingReport{
		Date:            start,
		SalesReceived:   decimal.Zero,
		CounterReceived: decimal.Zero,
		ExpensesTotal:   decimal.Zero,
	}
	for _, s := range t.Sales {
		if !within(s.Date) {
			continue
		}
		r.SalesCount++
		if s.IsCounterSale {
			r.CounterReceived = r.CounterReceived.Add(s.AmountReceived)
			continue
		}
		r.BottlesSold += s.BottlesSold
		r.SalesReceived = r.SalesReceived.Add(s.AmountReceived)
	}
	for _, e := range t.Expenses {
		if within(e.Date) {
			r.ExpensesTotal = r.ExpensesTotal.Add(e.Amount)
		}
	}
	r.TotalReceived = r.SalesReceived.Add(r.CounterReceived)
	r.Net = r.TotalReceived.Sub(r.ExpensesTotal)
	return r
}

func filter[T any](list []T, keep func(T) bool) []T {
	out := make([]T, 0)
	for _, v := range list {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
