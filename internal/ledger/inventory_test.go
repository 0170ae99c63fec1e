package ledger

import (
	"errors"
	"reflect"
	"testing"

	"github.com/fekuna/omnipos-ledger-service/internal/ledger/dto"
	"github.com/fekuna/omnipos-ledger-service/internal/model"
)

func TestAdjustStock(t *testing.T) {
	tests := []struct {
		name   string
		in     dto.AdjustStockInput
		wantBy string
	}{
		{
			name:   "default actor",
			in:     dto.AdjustStockInput{ItemID: 2, NewStock: 80, QuantityChange: -20, Reason: "Damaged"},
			wantBy: AdjustedByAdmin,
		},
		{
			name:   "named actor",
			in:     dto.AdjustStockInput{ItemID: 2, NewStock: 150, QuantityChange: 50, Reason: "Restock", AdjustedBy: "kamran"},
			wantBy: "kamran",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := fixture(10)
			ch, item, err := AdjustStock(in, &tt.in, testParams())
			if err != nil {
				t.Fatal(err)
			}
			if item.Stock != tt.in.NewStock || ch.Tables.Inventory[1].Stock != tt.in.NewStock {
				t.Errorf("stock = %d, want %d", item.Stock, tt.in.NewStock)
			}
			adj := ch.Tables.StockAdjustments[0]
			if adj.ItemID != 2 || adj.QuantityChange != tt.in.QuantityChange || adj.StockAfter != tt.in.NewStock {
				t.Errorf("adjustment = %+v", adj)
			}
			if adj.Reason != tt.in.Reason || adj.AdjustedBy != tt.wantBy {
				t.Errorf("adjustment reason/by = %q/%q", adj.Reason, adj.AdjustedBy)
			}
			if in.Inventory[1].Stock != 100 {
				t.Error("input mutated")
			}
		})
	}
}

func TestAdjustStockMissingItem(t *testing.T) {
	_, _, err := AdjustStock(fixture(10), &dto.AdjustStockInput{ItemID: 99, NewStock: 1, Reason: "x"}, testParams())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteInventoryItemCascade(t *testing.T) {
	in := fixture(10)
	adjusted, _, err := AdjustStock(in, &dto.AdjustStockInput{ItemID: 2, NewStock: 90, QuantityChange: -10, Reason: "count"}, testParams())
	if err != nil {
		t.Fatal(err)
	}

	ch, item, err := DeleteInventoryItem(adjusted.Tables, 2)
	if err != nil {
		t.Fatal(err)
	}
	if item.ID != 2 || len(ch.Tables.Inventory) != 1 {
		t.Fatalf("inventory = %+v", ch.Tables.Inventory)
	}
	for _, a := range ch.Tables.StockAdjustments {
		if a.ItemID == 2 {
			t.Error("adjustment of deleted item kept")
		}
	}
	if !reflect.DeepEqual(ch.Tables.StockAdjustments, in.StockAdjustments) {
		t.Error("adjustments of other items changed")
	}

	if _, _, err := DeleteInventoryItem(in, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestInventoryItemRole(t *testing.T) {
	in := fixture(10)
	p := testParams()

	if _, _, err := AddInventoryItem(in, &dto.CreateItemInput{Name: "Second bottle", Role: model.RoleBottledWater}, p); !errors.Is(err, ErrDuplicateRole) {
		t.Errorf("add: err = %v, want ErrDuplicateRole", err)
	}
	if _, _, err := UpdateInventoryItem(in, &dto.UpdateItemInput{ID: 2, Name: "Caps", Role: model.RoleBottledWater}); !errors.Is(err, ErrDuplicateRole) {
		t.Errorf("update: err = %v, want ErrDuplicateRole", err)
	}

	// Re-saving the current holder keeps its role.
	ch, item, err := UpdateInventoryItem(in, &dto.UpdateItemInput{ID: 1, Name: "19L Bottle", LowStockThreshold: 20, Role: model.RoleBottledWater})
	if err != nil {
		t.Fatal(err)
	}
	if item.Stock != 10 || item.Name != "19L Bottle" || BottledWaterIndex(ch.Tables.Inventory) != 0 {
		t.Errorf("item = %+v", item)
	}
}

func TestAddInventoryItem(t *testing.T) {
	in := fixture(10)
	ch, item, err := AddInventoryItem(in, &dto.CreateItemInput{Name: "Dispenser Tap", Category: "Spares", Stock: 3, LowStockThreshold: 5}, testParams())
	if err != nil {
		t.Fatal(err)
	}
	if ch.Tables.Inventory[0].ID != item.ID || len(ch.Tables.Inventory) != 3 {
		t.Error("item not prepended")
	}
	if len(ch.Tables.StockAdjustments) != len(in.StockAdjustments) {
		t.Error("adding an item wrote an adjustment")
	}
	if low := LowStock(ch.Tables.Inventory); len(low) != 1 || low[0].ID != item.ID {
		t.Errorf("low stock = %+v", low)
	}
}
