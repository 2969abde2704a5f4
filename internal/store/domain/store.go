package domain

import (
	"github.com/shopspring/decimal"
)

// Ingredient is a delivery/stock row owned by external business processes;
// this system only reads it, scoped to the caller's store and requested dates.
type Ingredient struct {
	IngredientID       int64           `json:"ingredient_id" db:"ingredient_id"`
	MaterialSystemCode string          `json:"material_system_code" db:"material_system_code"`
	Name               string          `json:"name" db:"name"`
	Date               string          `json:"date" db:"date"`
	Quantity           decimal.Decimal `json:"quantity" db:"quantity"`
	StoreID            string          `json:"store_id" db:"store_id"`
}

// StoreMenuItem is a per-store instance of a catalog entry with
// store-specific price and status.
type StoreMenuItem struct {
	StoreMenuItemID int64           `json:"store_menu_item_id" db:"store_menu_item_id"`
	MenuID          int64           `json:"menu_id" db:"menu_id"`
	MenuName        string          `json:"menu_name" db:"menu_name"`
	Price           decimal.Decimal `json:"price" db:"price"`
	Status          bool            `json:"status" db:"status"`
	StoreID         string          `json:"store_id" db:"store_id"`
}

// StoreMenuItemWithCode is a store menu item joined with its optional
// catalog code.
type StoreMenuItemWithCode struct {
	StoreMenuItem
	MenuCode *string `json:"menu_code,omitempty"`
}

// StoreMenuItemPatch carries the store menu fields an update may change.
type StoreMenuItemPatch struct {
	Status *bool
	Price  *decimal.Decimal
}
