package ledger

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-ledger-service/internal/ledger/dto"
	"github.com/fekuna/omnipos-ledger-service/internal/notify"
)

// ErrBusy is returned when the writer lock could not be taken in time.
var ErrBusy = errors.New("system busy, please try again later (lock)")

// NotifiedError carries the error notification already published for a
// rejected operation. Its message is the user-facing text.
type NotifiedError struct {
	Notification *notify.Notification
	Err          error
}

func (e *NotifiedError) Error() string { return e.Notification.Message }

func (e *NotifiedError) Unwrap() error { return e.Err }

type UseCase interface {
	// Customers
	AddCustomer(ctx context.Context, input *dto.CreateCustomerInput) (*dto.CustomerOutcome, error)
	UpdateCustomer(ctx context.Context, input *dto.UpdateCustomerInput) (*dto.CustomerOutcome, error)
	DeleteCustomer(ctx context.Context, customerID int64) (*dto.CustomerOutcome, error)
	UpdateSchedule(ctx context.Context, input *dto.UpdateScheduleInput) (*dto.CustomerOutcome, error)
	SetEmptyBottles(ctx context.Context, input *dto.SetEmptyBottlesInput) (*dto.CustomerOutcome, error)
	RefreshDeliveryDue(ctx context.Context) (int, error)
	ListCustomers(ctx context.Context, filters *dto.CustomerFilters) (*dto.CustomerList, error)
	GetCustomerDetail(ctx context.Context, customerID int64) (*dto.CustomerDetail, error)
	GetReminder(ctx context.Context, customerID int64) (*dto.Reminder, error)

	// Sales
	AddSale(ctx context.Context, input *dto.AddSaleInput) (*dto.SaleOutcome, error)
	AddCounterSale(ctx context.Context, input *dto.AddCounterSaleInput) (*dto.SaleOutcome, error)
	EditSale(ctx context.Context, input *dto.EditSaleInput) (*dto.SaleOutcome, error)
	DeleteSale(ctx context.Context, saleID int64) (*dto.SaleOutcome, error)
	ListSales(ctx context.Context, filters *dto.SaleFilters) (*dto.SaleList, error)

	// Inventory
	AddInventoryItem(ctx context.Context, input *dto.CreateItemInput) (*dto.ItemOutcome, error)
	UpdateInventoryItem(ctx context.Context, input *dto.UpdateItemInput) (*dto.ItemOutcome, error)
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*dto.ItemOutcome, error)
	DeleteInventoryItem(ctx context.Context, itemID int64) (*dto.ItemOutcome, error)
	ListInventory(ctx context.Context) (*dto.ItemList, error)
	ListLowStock(ctx context.Context) (*dto.ItemList, error)
	ListStockAdjustments(ctx context.Context, filters *dto.AdjustmentFilters) (*dto.AdjustmentList, error)

	// Salesmen and expenses
	AddSalesman(ctx context.Context, input *dto.CreateSalesmanInput) (*dto.SalesmanOutcome, error)
	DeleteSalesman(ctx context.Context, salesmanID int64) (*dto.SalesmanOutcome, error)
	RecordSalesmanPayment(ctx context.Context, input *dto.RecordPaymentInput) (*dto.PaymentOutcome, error)
	ListSalesmen(ctx context.Context) (*dto.SalesmanList, error)
	GetSalesmanReport(ctx context.Context, salesmanID int64) (*dto.SalesmanReport, error)
	AddExpense(ctx context.Context, input *dto.CreateExpenseInput) (*dto.ExpenseOutcome, error)
	UpdateExpense(ctx context.Context, input *dto.UpdateExpenseInput) (*dto.ExpenseOutcome, error)
	ListExpenses(ctx context.Context) (*dto.ExpenseList, error)

	// Settings and reports
	GetSettings(ctx context.Context) (*dto.Settings, error)
	UpdateBottlePrice(ctx context.Context, input *dto.SetBottlePriceInput) (*dto.SettingsOutcome, error)
	GetClosingReport(ctx context.Context, input *dto.ClosingReportInput) (*dto.ClosingReport, error)
}
