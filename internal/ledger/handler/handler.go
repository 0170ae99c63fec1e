package handler

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/fekuna/omnipos-ledger-service/internal/auth"
	"github.com/fekuna/omnipos-ledger-service/internal/ledger"
	"github.com/fekuna/omnipos-ledger-service/internal/ledger/dto"
	"github.com/fekuna/omnipos-ledger-service/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var _ LedgerServiceServer = (*LedgerHandler)(nil)

type LedgerHandler struct {
	uc       ledger.UseCase
	validate *validator.Validate
	logger   logger.ZapLogger
}

func NewLedgerHandler(uc ledger.UseCase, log logger.ZapLogger) *LedgerHandler {
	return &LedgerHandler{
		uc:       uc,
		validate: NewValidator(),
		logger:   log,
	}
}

// NewValidator returns a validator that checks decimal.Decimal fields with
// the numeric tags (gte, gt) by comparing their float value.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func (h *LedgerHandler) check(in any) error {
	err := h.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag()))
	}
	return status.Error(codes.InvalidArgument, strings.Join(msgs, "; "))
}

// toStatus maps ledger errors onto gRPC codes. Unknown errors are logged and
// reported as Internal without their text.
func (h *LedgerHandler) toStatus(ctx context.Context, err error) error {
	var notified *ledger.NotifiedError
	switch {
	case errors.As(err, &notified):
		return status.Error(codes.FailedPrecondition, notified.Error())
	case errors.Is(err, ledger.ErrInsufficientStock), errors.Is(err, ledger.ErrDuplicateRole):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, ledger.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, ledger.ErrInvalidPrice):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ledger.ErrBusy):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	h.logger.Error("ledger request failed", zap.String("actor", auth.GetActor(ctx)), zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}

// handle validates in, calls fn and maps its error.
func handle[Req, Resp any](ctx context.Context, h *LedgerHandler, in *Req, fn func(context.Context, *Req) (*Resp, error)) (*Resp, error) {
	if in == nil {
		in = new(Req)
	}
	if err := h.check(in); err != nil {
		return nil, err
	}
	out, err := fn(ctx, in)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return out, nil
}

func byID[Resp any](fn func(context.Context, int64) (*Resp, error)) func(context.Context, *dto.IDInput) (*Resp, error) {
	return func(ctx context.Context, in *dto.IDInput) (*Resp, error) {
		return fn(ctx, in.ID)
	}
}

func noArgs[Resp any](fn func(context.Context) (*Resp, error)) func(context.Context, *dto.Empty) (*Resp, error) {
	return func(ctx context.Context, _ *dto.Empty) (*Resp, error) {
		return fn(ctx)
	}
}

// Customers

func (h *LedgerHandler) AddCustomer(ctx context.Context, req *dto.CreateCustomerInput) (*dto.CustomerOutcome, error) {
	return handle(ctx, h, req, h.uc.AddCustomer)
}

func (h *LedgerHandler) UpdateCustomer(ctx context.Context, req *dto.UpdateCustomerInput) (*dto.CustomerOutcome, error) {
	return handle(ctx, h, req, h.uc.UpdateCustomer)
}

func (h *LedgerHandler) DeleteCustomer(ctx context.Context, req *dto.IDInput) (*dto.CustomerOutcome, error) {
	return handle(ctx, h, req, byID(h.uc.DeleteCustomer))
}

func (h *LedgerHandler) UpdateSchedule(ctx context.Context, req *dto.UpdateScheduleInput) (*dto.CustomerOutcome, error) {
	return handle(ctx, h, req, h.uc.UpdateSchedule)
}

func (h *LedgerHandler) SetEmptyBottles(ctx context.Context, req *dto.SetEmptyBottlesInput) (*dto.CustomerOutcome, error) {
	return handle(ctx, h, req, h.uc.SetEmptyBottles)
}

func (h *LedgerHandler) ListCustomers(ctx context.Context, req *dto.CustomerFilters) (*dto.CustomerList, error) {
	return handle(ctx, h, req, h.uc.ListCustomers)
}

func (h *LedgerHandler) GetCustomerDetail(ctx context.Context, req *dto.IDInput) (*dto.CustomerDetail, error) {
	return handle(ctx, h, req, byID(h.uc.GetCustomerDetail))
}

func (h *LedgerHandler) GetReminder(ctx context.Context, req *dto.IDInput) (*dto.Reminder, error) {
	return handle(ctx, h, req, byID(h.uc.GetReminder))
}

// Sales

func (h *LedgerHandler) AddSale(ctx context.Context, req *dto.AddSaleInput) (*dto.SaleOutcome, error) {
	return handle(ctx, h, req, h.uc.AddSale)
}

func (h *LedgerHandler) AddCounterSale(ctx context.Context, req *dto.AddCounterSaleInput) (*dto.SaleOutcome, error) {
	return handle(ctx, h, req, h.uc.AddCounterSale)
}

func (h *LedgerHandler) EditSale(ctx context.Context, req *dto.EditSaleInput) (*dto.SaleOutcome, error) {
	return handle(ctx, h, req, h.uc.EditSale)
}

func (h *LedgerHandler) DeleteSale(ctx context.Context, req *dto.IDInput) (*dto.SaleOutcome, error) {
	return handle(ctx, h, req, byID(h.uc.DeleteSale))
}

func (h *LedgerHandler) ListSales(ctx context.Context, req *dto.SaleFilters) (*dto.SaleList, error) {
	return handle(ctx, h, req, h.uc.ListSales)
}

// Inventory

func (h *LedgerHandler) AddInventoryItem(ctx context.Context, req *dto.CreateItemInput) (*dto.ItemOutcome, error) {
	return handle(ctx, h, req, h.uc.AddInventoryItem)
}

func (h *LedgerHandler) UpdateInventoryItem(ctx context.Context, req *dto.UpdateItemInput) (*dto.ItemOutcome, error) {
	return handle(ctx, h, req, h.uc.UpdateInventoryItem)
}

// AdjustStock records the calling operator when the request names nobody.
func (h *LedgerHandler) AdjustStock(ctx context.Context, req *dto.AdjustStockInput) (*dto.ItemOutcome, error) {
	if req != nil && req.AdjustedBy == "" {
		req.AdjustedBy = auth.GetActor(ctx)
	}
	return handle(ctx, h, req, h.uc.AdjustStock)
}

func (h *LedgerHandler) DeleteInventoryItem(ctx context.Context, req *dto.IDInput) (*dto.ItemOutcome, error) {
	return handle(ctx, h, req, byID(h.uc.DeleteInventoryItem))
}

func (h *LedgerHandler) ListInventory(ctx context.Context, req *dto.Empty) (*dto.ItemList, error) {
	return handle(ctx, h, req, noArgs(h.uc.ListInventory))
}

func (h *LedgerHandler) ListLowStock(ctx context.Context, req *dto.Empty) (*dto.ItemList, error) {
	return handle(ctx, h, req, noArgs(h.uc.ListLowStock))
}

func (h *LedgerHandler) ListStockAdjustments(ctx context.Context, req *dto.AdjustmentFilters) (*dto.AdjustmentList, error) {
	return handle(ctx, h, req, h.uc.ListStockAdjustments)
}

// Salesmen and expenses

func (h *LedgerHandler) AddSalesman(ctx context.Context, req *dto.CreateSalesmanInput) (*dto.SalesmanOutcome, error) {
	return handle(ctx, h, req, h.uc.AddSalesman)
}

func (h *LedgerHandler) DeleteSalesman(ctx context.Context, req *dto.IDInput) (*dto.SalesmanOutcome, error) {
	return handle(ctx, h, req, byID(h.uc.DeleteSalesman))
}

func (h *LedgerHandler) RecordSalesmanPayment(ctx context.Context, req *dto.RecordPaymentInput) (*dto.PaymentOutcome, error) {
	return handle(ctx, h, req, h.uc.RecordSalesmanPayment)
}

func (h *LedgerHandler) ListSalesmen(ctx context.Context, req *dto.Empty) (*dto.SalesmanList, error) {
	return handle(ctx, h, req, noArgs(h.uc.ListSalesmen))
}

func (h *LedgerHandler) GetSalesmanReport(ctx context.Context, req *dto.IDInput) (*dto.SalesmanReport, error) {
	return handle(ctx, h, req, byID(h.uc.GetSalesmanReport))
}

func (h *LedgerHandler) AddExpense(ctx context.Context, req *dto.CreateExpenseInput) (*dto.ExpenseOutcome, error) {
	return handle(ctx, h, req, h.uc.AddExpense)
}

func (h *LedgerHandler) UpdateExpense(ctx context.Context, req *dto.UpdateExpenseInput) (*dto.ExpenseOutcome, error) {
	return handle(ctx, h, req, h.uc.UpdateExpense)
}

func (h *LedgerHandler) ListExpenses(ctx context.Context, req *dto.Empty) (*dto.ExpenseList, error) {
	return handle(ctx, h, req, noArgs(h.uc.ListExpenses))
}

// Settings and reports

func (h *LedgerHandler) GetSettings(ctx context.Context, req *dto.Empty) (*dto.Settings, error) {
	return handle(ctx, h, req, noArgs(h.uc.GetSettings))
}

func (h *LedgerHandler) UpdateBottlePrice(ctx context.Context, req *dto.SetBottlePriceInput) (*dto.SettingsOutcome, error) {
	return handle(ctx, h, req, h.uc.UpdateBottlePrice)
}

func (h *LedgerHandler) GetClosingReport(ctx context.Context, req *dto.ClosingReportInput) (*dto.ClosingReport, error) {
	return handle(ctx, h, req, h.uc.GetClosingReport)
}
