package usecase

import (
	"context"
	"net/url"
	"strings"

	"github.com/fekuna/omnipos-ledger-service/internal/i18n"
	"github.com/fekuna/omnipos-ledger-service/internal/ledger"
	"github.com/fekuna/omnipos-ledger-service/internal/ledger/dto"
)

const (
	opAddCustomer        = "add_customer"
	opUpdateCustomer     = "update_customer"
	opDeleteCustomer     = "delete_customer"
	opUpdateSchedule     = "update_schedule"
	opSetEmptyBottles    = "set_empty_bottles"
	opRefreshDeliveryDue = "refresh_delivery_due"
	opAddSale            = "add_sale"
	opAddCounterSale     = "add_counter_sale"
	opEditSale           = "edit_sale"
	opDeleteSale         = "delete_sale"
	opAddItem            = "add_inventory_item"
	opUpdateItem         = "update_inventory_item"
	opAdjustStock        = "adjust_stock"
	opDeleteItem         = "delete_inventory_item"
	opAddSalesman        = "add_salesman"
	opDeleteSalesman     = "delete_salesman"
	opRecordPayment      = "record_salesman_payment"
	opAddExpense         = "add_expense"
	opUpdateExpense      = "update_expense"
	opUpdatePrice        = "update_bottle_price"
)

const reminderBaseURL = "https://wa.me/"

// Reads load a consistent snapshot without taking the writer lock.

func (uc *ledgerUseCase) ListCustomers(ctx context.Context, filters *dto.CustomerFilters) (*dto.CustomerList, error) {
	t, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	customers := ledger.FilterCustomers(t.Customers, filters)
	return &dto.CustomerList{Customers: customers, Total: len(customers)}, nil
}

func (uc *ledgerUseCase) GetCustomerDetail(ctx context.Context, customerID int64) (*dto.CustomerDetail, error) {
	t, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.CustomerDetail(t, customerID)
}

// GetReminder renders the account summary sent to a customer and the wa.me
// link that opens it in WhatsApp.
func (uc *ledgerUseCase) GetReminder(ctx context.Context, customerID int64) (*dto.Reminder, error) {
	t, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	c, err := ledger.FindCustomer(t, customerID)
	if err != nil {
		return nil, err
	}

	msg := uc.translator.Localize(i18n.MsgCustomerReminder, map[string]any{
		"Name":          c.Name,
		"Business":      uc.cfg.BusinessName,
		"Currency":      uc.cfg.Currency,
		"Balance":       c.TotalBalance.String(),
		"PaidBottles":   c.PaidBottles,
		"UnpaidBottles": c.UnpaidBottles(),
		"EmptyBottles":  c.EmptyBottlesOnHand,
	})

	// QueryEscape encodes spaces as "+", which wa.me shows literally.
	text := strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
	return &dto.Reminder{
		CustomerID: c.ID,
		Message:    msg,
		URL:        reminderBaseURL + c.Mobile + "?text=" + text,
	}, nil
}

func (uc *ledgerUseCase) ListSales(ctx context.Context, filters *dto.SaleFilters) (*dto.SaleList, error) {
	t, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	sales := ledger.FilterSales(t.Sales, filters)
	return &dto.SaleList{Sales: sales, Total: len(sales)}, nil
}

func (uc *ledgerUseCase) ListInventory(ctx context.Context) (*dto.ItemList, error) {
	t, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ItemList{Items: t.Inventory, Total: len(t.Inventory)}, nil
}

func (uc *ledgerUseCase) ListLowStock(ctx context.Context) (*dto.ItemList, error) {
	t, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	items := ledger.LowStock(t.Inventory)
	return &dto.ItemList{Items: items, Total: len(items)}, nil
}

func (uc *ledgerUseCase) ListStockAdjustments(ctx context.Context, filters *dto.AdjustmentFilters) (*dto.AdjustmentList, error) {
	t, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	adjustments := ledger.AdjustmentsFor(t.StockAdjustments, filters.ItemID)
	return &dto.AdjustmentList{Adjustments: adjustments, Total: len(adjustments)}, nil
}

func (uc *ledgerUseCase) ListSalesmen(ctx context.Context) (*dto.SalesmanList, error) {
	t, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.SalesmanList{Salesmen: t.Salesmen, Total: len(t.Salesmen)}, nil
}

func (uc *ledgerUseCase) GetSalesmanReport(ctx context.Context, salesmanID int64) (*dto.SalesmanReport, error) {
	t, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.SalesmanReport(t, salesmanID)
}

func (uc *ledgerUseCase) ListExpenses(ctx context.Context) (*dto.ExpenseList, error) {
	t, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ExpenseList{Expenses: t.Expenses, Total: len(t.Expenses)}, nil
}

func (uc *ledgerUseCase) GetSettings(ctx context.Context) (*dto.Settings, error) {
	t, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.Settings{BottlePrice: t.BottlePrice}, nil
}

// GetClosingReport defaults to today in the configured time zone.
func (uc *ledgerUseCase) GetClosingReport(ctx context.Context, input *dto.ClosingReportInput) (*dto.ClosingReport, error) {
	t, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	day := uc.now()
	if !input.Date.IsZero() {
		day = input.Date.In(uc.cfg.Location)
	}
	return ledger.ClosingReport(t, day), nil
}
