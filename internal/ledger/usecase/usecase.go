package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-ledger-service/internal/i18n"
	"github.com/fekuna/omnipos-ledger-service/internal/ledger"
	"github.com/fekuna/omnipos-ledger-service/internal/ledger/dto"
	"github.com/fekuna/omnipos-ledger-service/internal/logger"
	"github.com/fekuna/omnipos-ledger-service/internal/model"
	"github.com/fekuna/omnipos-ledger-service/internal/notify"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	lockKey     = "lock:ledger"
	lockTTL     = 5 * time.Second
	lockBackoff = 100 * time.Millisecond

	publishTimeout = 5 * time.Second
)

// Locker is implemented by cache.RedisClient and cache.LocalLocker.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}

type Translator interface {
	Localize(id string, data map[string]any) string
}

type Config struct {
	BusinessName string
	Currency     string
	LockAttempts int
	Location     *time.Location
}

type ledgerUseCase struct {
	repo       ledger.Repository
	locker     Locker
	ids        ledger.IDGenerator
	publisher  notify.Publisher
	translator Translator
	logger     logger.ZapLogger
	cfg        Config
	clock      func() time.Time
}

func NewLedgerUseCase(
	repo ledger.Repository,
	locker Locker,
	ids ledger.IDGenerator,
	publisher notify.Publisher,
	translator Translator,
	log logger.ZapLogger,
	cfg Config,
) ledger.UseCase {
	if cfg.LockAttempts <= 0 {
		cfg.LockAttempts = 3
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &ledgerUseCase{
		repo:       repo,
		locker:     locker,
		ids:        ids,
		publisher:  publisher,
		translator: translator,
		logger:     log,
		cfg:        cfg,
		clock:      time.Now,
	}
}

func (uc *ledgerUseCase) now() time.Time {
	return uc.clock().In(uc.cfg.Location)
}

type transition func(t model.Tables, p ledger.Params) (ledger.Change, error)

// acquire takes the single writer lock, retrying LockAttempts times.
func (uc *ledgerUseCase) acquire(ctx context.Context) (func(), error) {
	start := time.Now()
	lockValue := uuid.New().String()

	acquired := false
	for i := 0; i < uc.cfg.LockAttempts; i++ {
		ok, err := uc.locker.AcquireLock(ctx, lockKey, lockValue, lockTTL)
		if err != nil {
			uc.logger.Error("failed to acquire ledger lock", zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockBackoff):
		}
	}
	LockWaitSeconds.Observe(time.Since(start).Seconds())

	if !acquired {
		return nil, ledger.ErrBusy
	}

	return func() {
		if err := uc.locker.ReleaseLock(context.WithoutCancel(ctx), lockKey, lockValue); err != nil {
			uc.logger.Error("failed to release ledger lock", zap.Error(err))
		}
	}, nil
}

// run applies fn under the writer lock and saves the tables it touched. It
// reports false when fn's target did not exist and silentNotFound is set.
func (uc *ledgerUseCase) run(ctx context.Context, op string, silentNotFound bool, fn transition) (bool, error) {
	release, err := uc.acquire(ctx)
	if err != nil {
		TransitionsTotal.WithLabelValues(op, resultError).Inc()
		return false, err
	}
	defer release()

	tables, err := uc.repo.Load(ctx)
	if err != nil {
		TransitionsTotal.WithLabelValues(op, resultError).Inc()
		uc.logger.Error("failed to load ledger tables", zap.String("operation", op), zap.Error(err))
		return false, fmt.Errorf("load tables: %w", err)
	}

	p := ledger.Params{BottlePrice: tables.BottlePrice, Now: uc.now(), IDs: uc.ids}
	ch, err := fn(*tables, p)
	if err != nil {
		if silentNotFound && errors.Is(err, ledger.ErrNotFound) {
			TransitionsTotal.WithLabelValues(op, resultNoop).Inc()
			uc.logger.Debug("ledger target missing", zap.String("operation", op), zap.Error(err))
			return false, nil
		}
		TransitionsTotal.WithLabelValues(op, resultRejected).Inc()
		return false, err
	}

	if len(ch.Touched) > 0 {
		if err := uc.repo.Save(ctx, &ch.Tables, ch.Touched); err != nil {
			TransitionsTotal.WithLabelValues(op, resultError).Inc()
			uc.logger.Error("failed to save ledger tables",
				zap.String("operation", op),
				zap.Strings("tables", ch.Touched),
				zap.Error(err),
			)
			return false, fmt.Errorf("save tables: %w", err)
		}
	}

	TransitionsTotal.WithLabelValues(op, resultApplied).Inc()
	return true, nil
}

// applied localizes and publishes the success notification of op.
func (uc *ledgerUseCase) applied(ctx context.Context, op, msgID string, data map[string]any) dto.Outcome {
	n := notify.Success(uc.translator.Localize(msgID, data))
	uc.publish(ctx, op, n)
	return dto.Outcome{Applied: true, Notification: n}
}

// reject publishes an error notification for failures the user must see.
// Other errors are returned unchanged.
func (uc *ledgerUseCase) reject(ctx context.Context, op string, err error) error {
	var ise *ledger.InsufficientStockError
	if !errors.As(err, &ise) {
		return err
	}
	n := notify.Failure(uc.translator.Localize(i18n.MsgInsufficientStock, map[string]any{
		"Available": ise.Available,
	}))
	uc.publish(ctx, op, n)
	return &ledger.NotifiedError{Notification: n, Err: err}
}

func (uc *ledgerUseCase) publish(ctx context.Context, op string, n *notify.Notification) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := uc.publisher.Publish(pubCtx, notify.NewEvent(op, *n, uc.now())); err != nil {
		uc.logger.Warn("failed to publish notification", zap.String("operation", op), zap.Error(err))
	}
}

// Customers

func (uc *ledgerUseCase) AddCustomer(ctx context.Context, input *dto.CreateCustomerInput) (*dto.CustomerOutcome, error) {
	var cust *model.Customer
	_, err := uc.run(ctx, opAddCustomer, false, func(t model.Tables, p ledger.Params) (ledger.Change, error) {
		ch, c := ledger.AddCustomer(t, input, p)
		cust = c
		return ch, nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.CustomerOutcome{Outcome: uc.applied(ctx, opAddCustomer, i18n.MsgCustomerAdded, nil), Customer: cust}, nil
}

func (uc *ledgerUseCase) UpdateCustomer(ctx context.Context, input *dto.UpdateCustomerInput) (*dto.CustomerOutcome, error) {
	var cust *model.Customer
	_, err := uc.run(ctx, opUpdateCustomer, false, func(t model.Tables, _ ledger.Params) (ledger.Change, error) {
		ch, c, err := ledger.UpdateCustomer(t, input)
		cust = c
		return ch, err
	})
	if err != nil {
		return nil, err
	}
	return &dto.CustomerOutcome{Outcome: uc.applied(ctx, opUpdateCustomer, i18n.MsgCustomerUpdated, nil), Customer: cust}, nil
}

func (uc *ledgerUseCase) DeleteCustomer(ctx context.Context, customerID int64) (*dto.CustomerOutcome, error) {
	var cust *model.Customer
	ok, err := uc.run(ctx, opDeleteCustomer, true, func(t model.Tables, _ ledger.Params) (ledger.Change, error) {
		ch, c, err := ledger.DeleteCustomer(t, customerID)
		cust = c
		return ch, err
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return &dto.CustomerOutcome{}, nil
	}
	return &dto.CustomerOutcome{Outcome: uc.applied(ctx, opDeleteCustomer, i18n.MsgCustomerDeleted, nil), Customer: cust}, nil
}

func (uc *ledgerUseCase) UpdateSchedule(ctx context.Context, input *dto.UpdateScheduleInput) (*dto.CustomerOutcome, error) {
	var cust *model.Customer
	_, err := uc.run(ctx, opUpdateSchedule, false, func(t model.Tables, p ledger.Params) (ledger.Change, error) {
		ch, c, err := ledger.UpdateSchedule(t, input, p)
		cust = c
		return ch, err
	})
	if err != nil {
		return nil, err
	}
	return &dto.CustomerOutcome{Outcome: uc.applied(ctx, opUpdateSchedule, i18n.MsgScheduleUpdated, nil), Customer: cust}, nil
}

func (uc *ledgerUseCase) SetEmptyBottles(ctx context.Context, input *dto.SetEmptyBottlesInput) (*dto.CustomerOutcome, error) {
	var cust *model.Customer
	_, err := uc.run(ctx, opSetEmptyBottles, false, func(t model.Tables, _ ledger.Params) (ledger.Change, error) {
		ch, c, err := ledger.SetEmptyBottles(t, input)
		cust = c
		return ch, err
	})
	if err != nil {
		return nil, err
	}
	return &dto.CustomerOutcome{Outcome: uc.applied(ctx, opSetEmptyBottles, i18n.MsgBottleCountUpdated, nil), Customer: cust}, nil
}

// RefreshDeliveryDue is run by the scheduler and publishes nothing.
func (uc *ledgerUseCase) RefreshDeliveryDue(ctx context.Context) (int, error) {
	changed := 0
	_, err := uc.run(ctx, opRefreshDeliveryDue, false, func(t model.Tables, p ledger.Params) (ledger.Change, error) {
		ch, n := ledger.RefreshDeliveryDue(t, p)
		changed = n
		return ch, nil
	})
	return changed, err
}

// Sales

func (uc *ledgerUseCase) AddSale(ctx context.Context, input *dto.AddSaleInput) (*dto.SaleOutcome, error) {
	var sale *model.SaleRecord
	_, err := uc.run(ctx, opAddSale, false, func(t model.Tables, p ledger.Params) (ledger.Change, error) {
		ch, s, err := ledger.AddSale(t, input, p)
		sale = s
		return ch, err
	})
	if err != nil {
		return nil, uc.reject(ctx, opAddSale, err)
	}
	return &dto.SaleOutcome{Outcome: uc.applied(ctx, opAddSale, i18n.MsgSaleAdded, nil), Sale: sale}, nil
}

func (uc *ledgerUseCase) AddCounterSale(ctx context.Context, input *dto.AddCounterSaleInput) (*dto.SaleOutcome, error) {
	var sale *model.SaleRecord
	_, err := uc.run(ctx, opAddCounterSale, false, func(t model.Tables, p ledger.Params) (ledger.Change, error) {
		ch, s := ledger.AddCounterSale(t, input, p)
		sale = s
		return ch, nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.SaleOutcome{Outcome: uc.applied(ctx, opAddCounterSale, i18n.MsgCounterSaleRecorded, nil), Sale: sale}, nil
}

func (uc *ledgerUseCase) EditSale(ctx context.Context, input *dto.EditSaleInput) (*dto.SaleOutcome, error) {
	var sale *model.SaleRecord
	ok, err := uc.run(ctx, opEditSale, true, func(t model.Tables, _ ledger.Params) (ledger.Change, error) {
		ch, s, err := ledger.EditSale(t, input)
		sale = s
		return ch, err
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return &dto.SaleOutcome{}, nil
	}
	return &dto.SaleOutcome{Outcome: uc.applied(ctx, opEditSale, i18n.MsgSaleUpdated, nil), Sale: sale}, nil
}

func (uc *ledgerUseCase) DeleteSale(ctx context.Context, saleID int64) (*dto.SaleOutcome, error) {
	var sale *model.SaleRecord
	ok, err := uc.run(ctx, opDeleteSale, true, func(t model.Tables, p ledger.Params) (ledger.Change, error) {
		ch, s, err := ledger.DeleteSale(t, saleID, p)
		sale = s
		return ch, err
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return &dto.SaleOutcome{}, nil
	}
	return &dto.SaleOutcome{Outcome: uc.applied(ctx, opDeleteSale, i18n.MsgSaleDeleted, nil), Sale: sale}, nil
}

// Inventory

func (uc *ledgerUseCase) AddInventoryItem(ctx context.Context, input *dto.CreateItemInput) (*dto.ItemOutcome, error) {
	var item *model.InventoryItem
	_, err := uc.run(ctx, opAddItem, false, func(t model.Tables, p ledger.Params) (ledger.Change, error) {
		ch, it, err := ledger.AddInventoryItem(t, input, p)
		item = it
		return ch, err
	})
	if err != nil {
		return nil, err
	}
	return &dto.ItemOutcome{Outcome: uc.applied(ctx, opAddItem, i18n.MsgItemAdded, nil), Item: item}, nil
}

func (uc *ledgerUseCase) UpdateInventoryItem(ctx context.Context, input *dto.UpdateItemInput) (*dto.ItemOutcome, error) {
	var item *model.InventoryItem
	_, err := uc.run(ctx, opUpdateItem, false, func(t model.Tables, _ ledger.Params) (ledger.Change, error) {
		ch, it, err := ledger.UpdateInventoryItem(t, input)
		item = it
		return ch, err
	})
	if err != nil {
		return nil, err
	}
	return &dto.ItemOutcome{Outcome: uc.applied(ctx, opUpdateItem, i18n.MsgItemUpdated, nil), Item: item}, nil
}

func (uc *ledgerUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*dto.ItemOutcome, error) {
	var item *model.InventoryItem
	ok, err := uc.run(ctx, opAdjustStock, true, func(t model.Tables, p ledger.Params) (ledger.Change, error) {
		ch, it, err := ledger.AdjustStock(t, input, p)
		item = it
		return ch, err
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return &dto.ItemOutcome{}, nil
	}
	return &dto.ItemOutcome{Outcome: uc.applied(ctx, opAdjustStock, i18n.MsgStockAdjusted, nil), Item: item}, nil
}

func (uc *ledgerUseCase) DeleteInventoryItem(ctx context.Context, itemID int64) (*dto.ItemOutcome, error) {
	var item *model.InventoryItem
	ok, err := uc.run(ctx, opDeleteItem, true, func(t model.Tables, _ ledger.Params) (ledger.Change, error) {
		ch, it, err := ledger.DeleteInventoryItem(t, itemID)
		item = it
		return ch, err
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return &dto.ItemOutcome{}, nil
	}
	return &dto.ItemOutcome{Outcome: uc.applied(ctx, opDeleteItem, i18n.MsgItemDeleted, nil), Item: item}, nil
}

// Salesmen and expenses

func (uc *ledgerUseCase) AddSalesman(ctx context.Context, input *dto.CreateSalesmanInput) (*dto.SalesmanOutcome, error) {
	var s *model.Salesman
	_, err := uc.run(ctx, opAddSalesman, false, func(t model.Tables, p ledger.Params) (ledger.Change, error) {
		ch, added := ledger.AddSalesman(t, input, p)
		s = added
		return ch, nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.SalesmanOutcome{Outcome: uc.applied(ctx, opAddSalesman, i18n.MsgSalesmanAdded, nil), Salesman: s}, nil
}

func (uc *ledgerUseCase) DeleteSalesman(ctx context.Context, salesmanID int64) (*dto.SalesmanOutcome, error) {
	var s *model.Salesman
	ok, err := uc.run(ctx, opDeleteSalesman, true, func(t model.Tables, _ ledger.Params) (ledger.Change, error) {
		ch, removed, err := ledger.DeleteSalesman(t, salesmanID)
		s = removed
		return ch, err
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return &dto.SalesmanOutcome{}, nil
	}
	return &dto.SalesmanOutcome{Outcome: uc.applied(ctx, opDeleteSalesman, i18n.MsgSalesmanDeleted, nil), Salesman: s}, nil
}

func (uc *ledgerUseCase) RecordSalesmanPayment(ctx context.Context, input *dto.RecordPaymentInput) (*dto.PaymentOutcome, error) {
	var pay *model.SalesmanPayment
	_, err := uc.run(ctx, opRecordPayment, false, func(t model.Tables, p ledger.Params) (ledger.Change, error) {
		ch, recorded, err := ledger.RecordSalesmanPayment(t, input, p)
		pay = recorded
		return ch, err
	})
	if err != nil {
		return nil, err
	}
	return &dto.PaymentOutcome{Outcome: uc.applied(ctx, opRecordPayment, i18n.MsgPaymentRecorded, nil), Payment: pay}, nil
}

func (uc *ledgerUseCase) AddExpense(ctx context.Context, input *dto.CreateExpenseInput) (*dto.ExpenseOutcome, error) {
	var e *model.Expense
	_, err := uc.run(ctx, opAddExpense, false, func(t model.Tables, p ledger.Params) (ledger.Change, error) {
		ch, added := ledger.AddExpense(t, input, p)
		e = added
		return ch, nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.ExpenseOutcome{Outcome: uc.applied(ctx, opAddExpense, i18n.MsgExpenseAdded, nil), Expense: e}, nil
}

func (uc *ledgerUseCase) UpdateExpense(ctx context.Context, input *dto.UpdateExpenseInput) (*dto.ExpenseOutcome, error) {
	var e *model.Expense
	ok, err := uc.run(ctx, opUpdateExpense, true, func(t model.Tables, _ ledger.Params) (ledger.Change, error) {
		ch, updated, err := ledger.UpdateExpense(t, input)
		e = updated
		return ch, err
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return &dto.ExpenseOutcome{}, nil
	}
	return &dto.ExpenseOutcome{Outcome: uc.applied(ctx, opUpdateExpense, i18n.MsgExpenseUpdated, nil), Expense: e}, nil
}

// Settings

func (uc *ledgerUseCase) UpdateBottlePrice(ctx context.Context, input *dto.SetBottlePriceInput) (*dto.SettingsOutcome, error) {
	_, err := uc.run(ctx, opUpdatePrice, false, func(t model.Tables, _ ledger.Params) (ledger.Change, error) {
		return ledger.SetBottlePrice(t, input)
	})
	if err != nil {
		return nil, err
	}
	out := uc.applied(ctx, opUpdatePrice, i18n.MsgPriceUpdated, map[string]any{"Price": input.Price.String()})
	return &dto.SettingsOutcome{Outcome: out, Settings: dto.Settings{BottlePrice: input.Price}}, nil
}
