// Package ledger holds the transition functions of the sale ledger.
//
// Every transition takes a model.Tables snapshot and returns a Change holding
// a new snapshot plus the keys of the tables it rewrote. The input snapshot is
// never modified: touched slices are copied before they are written, so a
// reader holding the old snapshot never sees a half-applied transition.
package ledger

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/fekuna/omnipos-ledger-service/internal/model"
	"github.com/shopspring/decimal"
)

const (
	AdjustedBySystem = "System"
	AdjustedByAdmin  = "Admin"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicateRole     = errors.New("inventory role already assigned")
	ErrInvalidPrice      = errors.New("bottle price must be positive")
)

// InsufficientStockError reports how many bottles were available when a sale
// asked for more.
type InsufficientStockError struct {
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, available %d", e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

type IDGenerator interface {
	NextID() int64
}

// Params carries everything a transition reads besides the tables. The bottle
// price is passed explicitly so transitions stay pure.
type Params struct {
	BottlePrice decimal.Decimal
	Now         time.Time
	IDs         IDGenerator
}

type Change struct {
	Tables  model.Tables
	Touched []string
}

func newChange(t model.Tables) Change {
	return Change{Tables: t}
}

func (c *Change) touch(keys ...string) {
	for _, k := range keys {
		if !slices.Contains(c.Touched, k) {
			c.Touched = append(c.Touched, k)
		}
	}
}

func notFound(kind string, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
}

func replaceAt[T any](list []T, i int, v T) []T {
	out := slices.Clone(list)
	out[i] = v
	return out
}

func prepend[T any](list []T, v T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, v)
	return append(out, list...)
}

func appendCopy[T any](list []T, v T) []T {
	out := make([]T, len(list), len(list)+1)
	copy(out, list)
	return append(out, v)
}

func removeWhere[T any](list []T, drop func(T) bool) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		if !drop(v) {
			out = append(out, v)
		}
	}
	return out
}

func indexByID[T any](list []T, id int64, idOf func(T) int64) int {
	return slices.IndexFunc(list, func(v T) bool { return idOf(v) == id })
}

func customerIndex(list []model.Customer, id int64) int {
	return indexByID(list, id, func(c model.Customer) int64 { return c.ID })
}

func saleIndex(list []model.SaleRecord, id int64) int {
	return indexByID(list, id, func(s model.SaleRecord) int64 { return s.ID })
}

func itemIndex(list []model.InventoryItem, id int64) int {
	return indexByID(list, id, func(i model.InventoryItem) int64 { return i.ID })
}

// BottledWaterIndex locates the stock item consumed by sales, or -1.
func BottledWaterIndex(items []model.InventoryItem) int {
	return slices.IndexFunc(items, func(i model.InventoryItem) bool {
		return i.Role == model.RoleBottledWater
	})
}
