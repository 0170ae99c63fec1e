package ledger

import (
	"github.com/fekuna/omnipos-ledger-service/internal/ledger/dto"
	"github.com/fekuna/omnipos-ledger-service/internal/model"
)

func AddSalesman(t model.Tables, in *dto.CreateSalesmanInput, p Params) (Change, *model.Salesman) {
	hired := in.HireDate
	if hired.IsZero() {
		hired = p.Now
	}
	s := model.Salesman{
		ID:       p.IDs.NextID(),
		Name:     in.Name,
		Mobile:   in.Mobile,
		HireDate: hired,
	}

	ch := newChange(t)
	ch.Tables.Salesmen = prepend(t.Salesmen, s)
	ch.touch(model.KeySalesmen)
	return ch, &s
}

// DeleteSalesman removes the salesman only. Sales, payments and customer
// assignments keep the dangling id as history.
func DeleteSalesman(t model.Tables, salesmanID int64) (Change, *model.Salesman, error) {
	i := indexByID(t.Salesmen, salesmanID, func(s model.Salesman) int64 { return s.ID })
	if i < 0 {
		return Change{}, nil, notFound("salesman", salesmanID)
	}
	s := t.Salesmen[i]

	ch := newChange(t)
	ch.Tables.Salesmen = removeWhere(t.Salesmen, func(s model.Salesman) bool { return s.ID == salesmanID })
	ch.touch(model.KeySalesmen)
	return ch, &s, nil
}

func RecordSalesmanPayment(t model.Tables, in *dto.RecordPaymentInput, p Params) (Change, *model.SalesmanPayment, error) {
	if indexByID(t.Salesmen, in.SalesmanID, func(s model.Salesman) int64 { return s.ID }) < 0 {
		return Change{}, nil, notFound("salesman", in.SalesmanID)
	}

	date := p.Now
	if in.Date != nil {
		date = *in.Date
	}
	pay := model.SalesmanPayment{
		ID:         p.IDs.NextID(),
		SalesmanID: in.SalesmanID,
		Amount:     in.Amount,
		Date:       date,
	}

	ch := newChange(t)
	ch.Tables.SalesmanPayments = prepend(t.SalesmanPayments, pay)
	ch.touch(model.KeySalesmanPayments)
	return ch, &pay, nil
}

func AddExpense(t model.Tables, in *dto.CreateExpenseInput, p Params) (Change, *model.Expense) {
	date := p.Now
	if in.Date != nil {
		date = *in.Date
	}
	e := model.Expense{
		ID:          p.IDs.NextID(),
		Date:        date,
		Category:    in.Category,
		Description: in.Description,
		Amount:      in.Amount,
	}

	ch := newChange(t)
	ch.Tables.Expenses = prepend(t.Expenses, e)
	ch.touch(model.KeyExpenses)
	return ch, &e
}

func UpdateExpense(t model.Tables, in *dto.UpdateExpenseInput) (Change, *model.Expense, error) {
	i := indexByID(t.Expenses, in.ID, func(e model.Expense) int64 { return e.ID })
	if i < 0 {
		return Change{}, nil, notFound("expense", in.ID)
	}
	e := t.Expenses[i]
	if !in.Date.IsZero() {
		e.Date = in.Date
	}
	e.Category = in.Category
	e.Description = in.Description
	e.Amount = in.Amount

	ch := newChange(t)
	ch.Tables.Expenses = replaceAt(t.Expenses, i, e)
	ch.touch(model.KeyExpenses)
	return ch, &e, nil
}

// SetBottlePrice changes the price used by later transitions. Recorded sales
// keep the amounts they were booked with.
func SetBottlePrice(t model.Tables, in *dto.SetBottlePriceInput) (Change, error) {
	if !in.Price.IsPositive() {
		return Change{}, ErrInvalidPrice
	}

	ch := newChange(t)
	ch.Tables.BottlePrice = in.Price
	ch.touch(model.KeyBottlePrice)
	return ch, nil
}
