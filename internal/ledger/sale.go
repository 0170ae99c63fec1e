package ledger

import (
	"fmt"

	"github.com/fekuna/omnipos-ledger-service/internal/ledger/dto"
	"github.com/fekuna/omnipos-ledger-service/internal/model"
	"github.com/shopspring/decimal"
)

// AddSale records a delivery to a customer. It fails with an
// *InsufficientStockError, leaving every table unchanged, when the bottled
// water item is missing or holds fewer than in.BottlesSold bottles.
func AddSale(t model.Tables, in *dto.AddSaleInput, p Params) (Change, *model.SaleRecord, error) {
	ii := BottledWaterIndex(t.Inventory)
	if ii < 0 {
		return Change{}, nil, &InsufficientStockError{Requested: in.BottlesSold}
	}
	if stock := t.Inventory[ii].Stock; stock < in.BottlesSold {
		return Change{}, nil, &InsufficientStockError{Requested: in.BottlesSold, Available: stock}
	}

	ci := customerIndex(t.Customers, in.CustomerID)
	if ci < 0 {
		return Change{}, nil, notFound("customer", in.CustomerID)
	}
	cust := t.Customers[ci]

	ch := newChange(t)

	if in.BottlesSold > 0 {
		item := t.Inventory[ii]
		recordAdjustment(&ch, ii, item.Stock-in.BottlesSold, -in.BottlesSold,
			"Sale to "+cust.Name, AdjustedBySystem, p)
	}

	cust.BottlesPurchased += in.BottlesSold
	if in.UpdateBalance {
		cost := p.BottlePrice.Mul(decimal.NewFromInt(int64(in.BottlesSold)))
		cust.PaidBottles += paidBottles(in.AmountReceived, p.BottlePrice)
		cust.TotalBalance = cust.TotalBalance.Add(cost).Sub(in.AmountReceived)
	}
	cust.EmptyBottlesOnHand += in.BottlesSold - in.BottlesReturned
	ch.Tables.Customers = replaceAt(t.Customers, ci, cust)
	ch.touch(model.KeyCustomers)

	sale := model.SaleRecord{
		ID:              p.IDs.NextID(),
		CustomerID:      cust.ID,
		CustomerName:    cust.Name,
		BottlesSold:     in.BottlesSold,
		AmountReceived:  in.AmountReceived,
		BottlesReturned: in.BottlesReturned,
		Date:            p.Now,
		SalesmanID:      in.SalesmanID,
	}
	ch.Tables.Sales = prepend(t.Sales, sale)
	ch.touch(model.KeySales)

	if in.BottlesSold > 0 || in.BottlesReturned > 0 {
		ch.Tables.BottleLogs = prepend(t.BottleLogs, model.BottleLog{
			ID:              p.IDs.NextID(),
			CustomerID:      cust.ID,
			Date:            p.Now,
			BottlesTaken:    in.BottlesSold,
			BottlesReturned: in.BottlesReturned,
		})
		ch.touch(model.KeyBottleLogs)
	}

	return ch, &sale, nil
}

// AddCounterSale records a walk-in cash sale. Only the sales table changes.
func AddCounterSale(t model.Tables, in *dto.AddCounterSaleInput, p Params) (Change, *model.SaleRecord) {
	sale := model.SaleRecord{
		ID:             p.IDs.NextID(),
		CustomerName:   model.CounterSaleCustomerName,
		AmountReceived: in.AmountReceived,
		Date:           p.Now,
		IsCounterSale:  true,
		Description:    in.Description,
	}

	ch := newChange(t)
	ch.Tables.Sales = prepend(t.Sales, sale)
	ch.touch(model.KeySales)
	return ch, &sale
}

// EditSale replaces the editable fields of a stored sale. Only a change in the
// received amount is reconciled, against the customer's balance; bottle
// quantities are replaced without touching stock, empties or paid bottles.
func EditSale(t model.Tables, in *dto.EditSaleInput) (Change, *model.SaleRecord, error) {
	si := saleIndex(t.Sales, in.ID)
	if si < 0 {
		return Change{}, nil, notFound("sale", in.ID)
	}
	stored := t.Sales[si]

	ch := newChange(t)

	if !stored.IsCounterSale && !stored.AmountReceived.Equal(in.AmountReceived) {
		if ci := customerIndex(t.Customers, stored.CustomerID); ci >= 0 {
			cust := t.Customers[ci]
			// Receiving less than before leaves more owed.
			cust.TotalBalance = cust.TotalBalance.Sub(in.AmountReceived.Sub(stored.AmountReceived))
			ch.Tables.Customers = replaceAt(t.Customers, ci, cust)
			ch.touch(model.KeyCustomers)
		}
	}

	updated := stored
	updated.AmountReceived = in.AmountReceived
	updated.SalesmanID = in.SalesmanID
	updated.Description = in.Description
	if !stored.IsCounterSale {
		updated.BottlesSold = in.BottlesSold
		updated.BottlesReturned = in.BottlesReturned
	}

	ch.Tables.Sales = replaceAt(t.Sales, si, updated)
	ch.touch(model.KeySales)
	return ch, &updated, nil
}

// DeleteSale removes a sale and, for customer sales with bottles, reverses its
// stock and customer effects. Paid bottles are not reversed and the sale's
// bottle log entries are kept.
func DeleteSale(t model.Tables, saleID int64, p Params) (Change, *model.SaleRecord, error) {
	si := saleIndex(t.Sales, saleID)
	if si < 0 {
		return Change{}, nil, notFound("sale", saleID)
	}
	sale := t.Sales[si]

	ch := newChange(t)

	if !sale.IsCounterSale && sale.BottlesSold > 0 {
		if ii := BottledWaterIndex(t.Inventory); ii >= 0 {
			item := t.Inventory[ii]
			recordAdjustment(&ch, ii, item.Stock+sale.BottlesSold, sale.BottlesSold,
				fmt.Sprintf("Sale Reversal (ID: %d)", sale.ID), AdjustedBySystem, p)
		}

		if ci := customerIndex(t.Customers, sale.CustomerID); ci >= 0 {
			cust := t.Customers[ci]
			cost := p.BottlePrice.Mul(decimal.NewFromInt(int64(sale.BottlesSold)))
			cust.TotalBalance = cust.TotalBalance.Sub(cost.Sub(sale.AmountReceived))
			cust.BottlesPurchased -= sale.BottlesSold
			cust.EmptyBottlesOnHand += sale.BottlesReturned - sale.BottlesSold
			ch.Tables.Customers = replaceAt(t.Customers, ci, cust)
			ch.touch(model.KeyCustomers)
		}
	}

	ch.Tables.Sales = removeWhere(t.Sales, func(s model.SaleRecord) bool { return s.ID == sale.ID })
	ch.touch(model.KeySales)
	return ch, &sale, nil
}

// paidBottles is floor(amount / price); a non-positive price pays for nothing.
func paidBottles(amount, price decimal.Decimal) int {
	if !price.IsPositive() {
		return 0
	}
	return int(amount.Div(price).Floor().IntPart())
}
