package ledger

import (
	"github.com/fekuna/omnipos-ledger-service/internal/ledger/dto"
	"github.com/fekuna/omnipos-ledger-service/internal/model"
)

// recordAdjustment sets the stock of the item at index i and appends the
// matching audit entry.
func recordAdjustment(ch *Change, i int, newStock, delta int, reason, by string, p Params) {
	item := ch.Tables.Inventory[i]
	item.Stock = newStock
	ch.Tables.Inventory = replaceAt(ch.Tables.Inventory, i, item)

	ch.Tables.StockAdjustments = prepend(ch.Tables.StockAdjustments, model.StockAdjustment{
		ID:             p.IDs.NextID(),
		ItemID:         item.ID,
		Date:           p.Now,
		QuantityChange: delta,
		StockAfter:     newStock,
		Reason:         reason,
		AdjustedBy:     by,
	})
	ch.touch(model.KeyInventory, model.KeyStockAdjustments)
}

func AddInventoryItem(t model.Tables, in *dto.CreateItemInput, p Params) (Change, *model.InventoryItem, error) {
	if in.Role == model.RoleBottledWater && BottledWaterIndex(t.Inventory) >= 0 {
		return Change{}, nil, ErrDuplicateRole
	}

	item := model.InventoryItem{
		ID:                p.IDs.NextID(),
		Name:              in.Name,
		Category:          in.Category,
		Stock:             in.Stock,
		LowStockThreshold: in.LowStockThreshold,
		Role:              in.Role,
	}

	ch := newChange(t)
	ch.Tables.Inventory = prepend(t.Inventory, item)
	ch.touch(model.KeyInventory)
	return ch, &item, nil
}

func UpdateInventoryItem(t model.Tables, in *dto.UpdateItemInput) (Change, *model.InventoryItem, error) {
	i := itemIndex(t.Inventory, in.ID)
	if i < 0 {
		return Change{}, nil, notFound("inventory item", in.ID)
	}
	if in.Role == model.RoleBottledWater {
		if cur := BottledWaterIndex(t.Inventory); cur >= 0 && cur != i {
			return Change{}, nil, ErrDuplicateRole
		}
	}

	item := t.Inventory[i]
	item.Name = in.Name
	item.Category = in.Category
	item.LowStockThreshold = in.LowStockThreshold
	item.Role = in.Role

	ch := newChange(t)
	ch.Tables.Inventory = replaceAt(t.Inventory, i, item)
	ch.touch(model.KeyInventory)
	return ch, &item, nil
}

// AdjustStock writes a caller-supplied absolute stock together with its audit
// entry. It is the only path where the resulting stock is not derived.
func AdjustStock(t model.Tables, in *dto.AdjustStockInput, p Params) (Change, *model.InventoryItem, error) {
	i := itemIndex(t.Inventory, in.ItemID)
	if i < 0 {
		return Change{}, nil, notFound("inventory item", in.ItemID)
	}

	by := in.AdjustedBy
	if by == "" {
		by = AdjustedByAdmin
	}

	ch := newChange(t)
	recordAdjustment(&ch, i, in.NewStock, in.QuantityChange, in.Reason, by, p)
	item := ch.Tables.Inventory[i]
	return ch, &item, nil
}

// DeleteInventoryItem removes the item and its whole adjustment history.
func DeleteInventoryItem(t model.Tables, itemID int64) (Change, *model.InventoryItem, error) {
	i := itemIndex(t.Inventory, itemID)
	if i < 0 {
		return Change{}, nil, notFound("inventory item", itemID)
	}
	item := t.Inventory[i]

	ch := newChange(t)
	ch.Tables.Inventory = removeWhere(t.Inventory, func(it model.InventoryItem) bool { return it.ID == itemID })
	ch.Tables.StockAdjustments = removeWhere(t.StockAdjustments, func(a model.StockAdjustment) bool { return a.ItemID == itemID })
	ch.touch(model.KeyInventory, model.KeyStockAdjustments)
	return ch, &item, nil
}
