package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-ledger-service/internal/cache"
	"github.com/fekuna/omnipos-ledger-service/internal/i18n"
	"github.com/fekuna/omnipos-ledger-service/internal/ledger"
	"github.com/fekuna/omnipos-ledger-service/internal/ledger/dto"
	"github.com/fekuna/omnipos-ledger-service/internal/ledger/repository"
	"github.com/fekuna/omnipos-ledger-service/internal/logger"
	"github.com/fekuna/omnipos-ledger-service/internal/model"
	"github.com/fekuna/omnipos-ledger-service/internal/notify"
	"github.com/shopspring/decimal"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []notify.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev notify.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) all() []notify.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notify.Event(nil), p.events...)
}

type counterIDs struct {
	mu   sync.Mutex
	next int64
}

func (c *counterIDs) NextID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	return 100 + c.next
}

type busyLocker struct{ attempts int }

func (l *busyLocker) AcquireLock(context.Context, string, string, time.Duration) (bool, error) {
	l.attempts++
	return false, nil
}

func (l *busyLocker) ReleaseLock(context.Context, string, string) error { return nil }

type failingSaveRepo struct {
	ledger.Repository
}

func (failingSaveRepo) Save(context.Context, *model.Tables, []string) error {
	return errors.New("disk full")
}

// Monday noon.
var fixedNow = time.Date(2024, time.March, 4, 12, 0, 0, 0, time.UTC)

type harness struct {
	uc   ledger.UseCase
	repo ledger.Repository
	pub  *recordingPublisher
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWith(t, repository.NewMemoryRepository(), cache.NewLocalLocker())
}

func newHarnessWith(t *testing.T, repo ledger.Repository, locker Locker) *harness {
	t.Helper()
	tr, err := i18n.New("en")
	if err != nil {
		t.Fatal(err)
	}
	pub := &recordingPublisher{}
	uc := NewLedgerUseCase(repo, locker, &counterIDs{}, pub, tr, logger.NewNop(), Config{
		BusinessName: "Nishat Beverages",
		Currency:     "PKR",
		LockAttempts: 2,
		Location:     time.UTC,
	})
	uc.(*ledgerUseCase).clock = func() time.Time { return fixedNow }
	return &harness{uc: uc, repo: repo, pub: pub}
}

func (h *harness) addCustomer(t *testing.T, name, mobile string) *model.Customer {
	t.Helper()
	out, err := h.uc.AddCustomer(context.Background(), &dto.CreateCustomerInput{CustomerProfile: dto.CustomerProfile{Name: name, Mobile: mobile}})
	if err != nil {
		t.Fatal(err)
	}
	return out.Customer
}

func (h *harness) tables(t *testing.T) *model.Tables {
	t.Helper()
	tables, err := h.repo.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return tables
}

func TestAddSalePersistsAndNotifies(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	cust := h.addCustomer(t, "Aslam", "923001234567")

	out, err := h.uc.AddSale(ctx, &dto.AddSaleInput{
		CustomerID:      cust.ID,
		BottlesSold:     3,
		AmountReceived:  decimal.NewFromInt(600),
		BottlesReturned: 2,
		UpdateBalance:   true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !out.Applied || out.Notification.Message != "Sale added!" || out.Notification.Kind != notify.KindSuccess {
		t.Errorf("outcome = %+v / %+v", out.Outcome, out.Notification)
	}

	tables := h.tables(t)
	if got := tables.Inventory[ledger.BottledWaterIndex(tables.Inventory)].Stock; got != 497 {
		t.Errorf("stock = %d, want 497", got)
	}
	c := tables.Customers[0]
	if c.BottlesPurchased != 3 || c.PaidBottles != 3 || !c.TotalBalance.IsZero() || c.EmptyBottlesOnHand != 1 {
		t.Errorf("customer = %+v", c)
	}
	if len(tables.Sales) != 1 || !tables.Sales[0].Date.Equal(fixedNow) {
		t.Errorf("sales = %+v", tables.Sales)
	}

	events := h.pub.all()
	if len(events) != 2 {
		t.Fatalf("events = %d, want one per applied transition", len(events))
	}
	if events[1].Operation != opAddSale || events[1].EventID == "" {
		t.Errorf("event = %+v", events[1])
	}
}

func TestAddSaleInsufficientStock(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	cust := h.addCustomer(t, "Aslam", "0300")
	before := h.tables(t)

	_, err := h.uc.AddSale(ctx, &dto.AddSaleInput{CustomerID: cust.ID, BottlesSold: 501})
	if !errors.Is(err, ledger.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	var ne *ledger.NotifiedError
	if !errors.As(err, &ne) {
		t.Fatalf("err = %T, want *ledger.NotifiedError", err)
	}
	if want := "Insufficient stock! Only 500 bottles available."; ne.Notification.Message != want {
		t.Errorf("message = %q, want %q", ne.Notification.Message, want)
	}

	events := h.pub.all()
	if last := events[len(events)-1]; last.Notification.Kind != notify.KindError || last.Operation != opAddSale {
		t.Errorf("last event = %+v", last)
	}

	after := h.tables(t)
	if len(after.Sales) != 0 || after.Inventory[0].Stock != before.Inventory[0].Stock {
		t.Error("rejected sale changed the tables")
	}
}

func TestAddSaleUnknownCustomer(t *testing.T) {
	h := newHarness(t)
	_, err := h.uc.AddSale(context.Background(), &dto.AddSaleInput{CustomerID: 42, BottlesSold: 1})
	if !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if n := len(h.pub.all()); n != 0 {
		t.Errorf("events = %d, want 0", n)
	}
}

func TestMissingTargetsAreSilentNoops(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	calls := map[string]func() (dto.Outcome, error){
		"edit sale": func() (dto.Outcome, error) {
			out, err := h.uc.EditSale(ctx, &dto.EditSaleInput{ID: 9})
			return out.Outcome, err
		},
		"delete sale": func() (dto.Outcome, error) {
			out, err := h.uc.DeleteSale(ctx, 9)
			return out.Outcome, err
		},
		"delete customer": func() (dto.Outcome, error) {
			out, err := h.uc.DeleteCustomer(ctx, 9)
			return out.Outcome, err
		},
		"adjust stock": func() (dto.Outcome, error) {
			out, err := h.uc.AdjustStock(ctx, &dto.AdjustStockInput{ItemID: 9, NewStock: 1, Reason: "x"})
			return out.Outcome, err
		},
		"delete item": func() (dto.Outcome, error) {
			out, err := h.uc.DeleteInventoryItem(ctx, 9)
			return out.Outcome, err
		},
		"delete salesman": func() (dto.Outcome, error) {
			out, err := h.uc.DeleteSalesman(ctx, 9)
			return out.Outcome, err
		},
		"update expense": func() (dto.Outcome, error) {
			out, err := h.uc.UpdateExpense(ctx, &dto.UpdateExpenseInput{ID: 9, Category: "x", Amount: decimal.NewFromInt(1)})
			return out.Outcome, err
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			out, err := call()
			if err != nil {
				t.Fatalf("err = %v, want nil", err)
			}
			if out.Applied || out.Notification != nil {
				t.Errorf("outcome = %+v, want not applied", out)
			}
		})
	}
	if n := len(h.pub.all()); n != 0 {
		t.Errorf("events = %d, want none for no-ops", n)
	}
}

func TestDeleteSaleRevertsAndNotifies(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	cust := h.addCustomer(t, "Aslam", "0300")
	added, err := h.uc.AddSale(ctx, &dto.AddSaleInput{CustomerID: cust.ID, BottlesSold: 5, AmountReceived: decimal.NewFromInt(400), UpdateBalance: true})
	if err != nil {
		t.Fatal(err)
	}

	out, err := h.uc.DeleteSale(ctx, added.Sale.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Applied || out.Notification.Message != "Sale deleted and data reverted!" {
		t.Errorf("outcome = %+v", out)
	}
	tables := h.tables(t)
	if tables.Inventory[0].Stock != 500 || !tables.Customers[0].TotalBalance.IsZero() || len(tables.Sales) != 0 {
		t.Errorf("not reverted: stock=%d balance=%s sales=%d", tables.Inventory[0].Stock, tables.Customers[0].TotalBalance, len(tables.Sales))
	}
	if len(tables.StockAdjustments) != 2 || len(tables.BottleLogs) != 1 {
		t.Errorf("adjustments=%d logs=%d", len(tables.StockAdjustments), len(tables.BottleLogs))
	}
}

func TestBusyLock(t *testing.T) {
	locker := &busyLocker{}
	h := newHarnessWith(t, repository.NewMemoryRepository(), locker)

	_, err := h.uc.AddCounterSale(context.Background(), &dto.AddCounterSaleInput{AmountReceived: decimal.NewFromInt(10)})
	if !errors.Is(err, ledger.ErrBusy) {
		t.Fatalf("err = %v, want ErrBusy", err)
	}
	if locker.attempts != 2 {
		t.Errorf("attempts = %d, want 2", locker.attempts)
	}
}

func TestSaveFailureIsNotNotified(t *testing.T) {
	h := newHarnessWith(t, failingSaveRepo{repository.NewMemoryRepository()}, cache.NewLocalLocker())

	_, err := h.uc.AddCounterSale(context.Background(), &dto.AddCounterSaleInput{AmountReceived: decimal.NewFromInt(10)})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("err = %v", err)
	}
	if n := len(h.pub.all()); n != 0 {
		t.Errorf("events = %d, want 0", n)
	}
}

func TestPublishFailureDoesNotFailTransition(t *testing.T) {
	h := newHarness(t)
	h.pub.err = errors.New("broker down")

	out, err := h.uc.AddCounterSale(context.Background(), &dto.AddCounterSaleInput{AmountReceived: decimal.NewFromInt(10), Description: "walk-in"})
	if err != nil {
		t.Fatal(err)
	}
	if !out.Applied || !out.Sale.IsCounterSale {
		t.Errorf("outcome = %+v", out)
	}
}

func TestUpdateBottlePrice(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	out, err := h.uc.UpdateBottlePrice(ctx, &dto.SetBottlePriceInput{Price: decimal.NewFromInt(250)})
	if err != nil {
		t.Fatal(err)
	}
	if out.Notification.Message != "Bottle price updated to 250!" {
		t.Errorf("message = %q", out.Notification.Message)
	}
	settings, err := h.uc.GetSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !settings.BottlePrice.Equal(decimal.NewFromInt(250)) {
		t.Errorf("price = %s", settings.BottlePrice)
	}

	if _, err := h.uc.UpdateBottlePrice(ctx, &dto.SetBottlePriceInput{Price: decimal.Zero}); !errors.Is(err, ledger.ErrInvalidPrice) {
		t.Errorf("err = %v, want ErrInvalidPrice", err)
	}
}

func TestGetReminder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	cust := h.addCustomer(t, "Aslam Khan", "923001234567")
	if _, err := h.uc.AddSale(ctx, &dto.AddSaleInput{CustomerID: cust.ID, BottlesSold: 4, AmountReceived: decimal.NewFromInt(200), UpdateBalance: true}); err != nil {
		t.Fatal(err)
	}

	r, err := h.uc.GetReminder(ctx, cust.ID)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Hello Aslam Khan, this is a friendly reminder from Nishat Beverages.",
		"- Remaining Payment: PKR 600",
		"- Total Paid Bottles: 1",
		"- Total Unpaid Bottles: 3",
		"- Empty Bottles to Return: 4",
	} {
		if !strings.Contains(r.Message, want) {
			t.Errorf("message missing %q:\n%s", want, r.Message)
		}
	}

	prefix := "https://wa.me/923001234567?text="
	if !strings.HasPrefix(r.URL, prefix) {
		t.Fatalf("url = %q", r.URL)
	}
	encoded := strings.TrimPrefix(r.URL, prefix)
	if strings.Contains(encoded, "+") || strings.Contains(encoded, " ") {
		t.Errorf("text not percent-encoded: %q", encoded)
	}
	decoded, err := url.PathUnescape(encoded)
	if err != nil || decoded != r.Message {
		t.Errorf("decoded text mismatch (err=%v)", err)
	}

	if _, err := h.uc.GetReminder(ctx, 1); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRefreshDeliveryDue(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	cust := h.addCustomer(t, "Aslam", "0300")
	// Monday is today; UpdateSchedule sets the flag right away.
	if _, err := h.uc.UpdateSchedule(ctx, &dto.UpdateScheduleInput{CustomerID: cust.ID, DeliveryDays: []string{"Monday"}}); err != nil {
		t.Fatal(err)
	}
	published := len(h.pub.all())

	h.uc.(*ledgerUseCase).clock = func() time.Time { return fixedNow.AddDate(0, 0, 1) }
	n, err := h.uc.RefreshDeliveryDue(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("changed = %d, want 1", n)
	}
	list, err := h.uc.ListCustomers(ctx, &dto.CustomerFilters{DueOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if list.Total != 0 {
		t.Errorf("due customers on Tuesday = %d", list.Total)
	}
	if len(h.pub.all()) != published {
		t.Error("refresh published a notification")
	}
}

func TestClosingReportDefaultsToToday(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	if _, err := h.uc.AddCounterSale(ctx, &dto.AddCounterSaleInput{AmountReceived: decimal.NewFromInt(300)}); err != nil {
		t.Fatal(err)
	}
	if _, err := h.uc.AddExpense(ctx, &dto.CreateExpenseInput{Category: "Fuel", Amount: decimal.NewFromInt(100)}); err != nil {
		t.Fatal(err)
	}

	r, err := h.uc.GetClosingReport(ctx, &dto.ClosingReportInput{})
	if err != nil {
		t.Fatal(err)
	}
	if !r.Net.Equal(decimal.NewFromInt(200)) || r.SalesCount != 1 {
		t.Errorf("report = %+v", r)
	}

	yesterday, err := h.uc.GetClosingReport(ctx, &dto.ClosingReportInput{Date: fixedNow.AddDate(0, 0, -1)})
	if err != nil {
		t.Fatal(err)
	}
	if yesterday.SalesCount != 0 {
		t.Errorf("yesterday sales = %d", yesterday.SalesCount)
	}
}

func TestInventoryFlow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	added, err := h.uc.AddInventoryItem(ctx, &dto.CreateItemInput{Name: "Tap", Category: "Spares", Stock: 1, LowStockThreshold: 3})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := h.uc.AdjustStock(ctx, &dto.AdjustStockInput{ItemID: added.Item.ID, NewStock: 10, QuantityChange: 9, Reason: "Restock"}); err != nil {
		t.Fatal(err)
	}

	adj, err := h.uc.ListStockAdjustments(ctx, &dto.AdjustmentFilters{ItemID: added.Item.ID})
	if err != nil {
		t.Fatal(err)
	}
	if adj.Total != 1 || adj.Adjustments[0].AdjustedBy != ledger.AdjustedByAdmin {
		t.Errorf("adjustments = %+v", adj.Adjustments)
	}

	low, err := h.uc.ListLowStock(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range low.Items {
		if it.ID == added.Item.ID {
			t.Error("restocked item still listed as low")
		}
	}

	if _, err := h.uc.AddInventoryItem(ctx, &dto.CreateItemInput{Name: "Other bottle", Role: model.RoleBottledWater}); !errors.Is(err, ledger.ErrDuplicateRole) {
		t.Errorf("err = %v, want ErrDuplicateRole", err)
	}
}
