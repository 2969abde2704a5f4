package domain

import (
	"github.com/shopspring/decimal"
)

// MenuItem is a headquarters catalog entry available for stores to adopt.
// The K/other JSON names mirror the flag names the clients send.
type MenuItem struct {
	MenuID      int64           `json:"menu_id" db:"menu_id"`
	Name        string          `json:"name" db:"name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Status      bool            `json:"status" db:"status"`
	Description *string         `json:"description" db:"description"`
	KFlag       bool            `json:"K" db:"k_flag"`
	OtherFlag   bool            `json:"other" db:"other_flag"`
}

// MenuCode maps a catalog entry to its external menu code. menu_system_code
// holds the string form of a MenuItem's menu_id.
type MenuCode struct {
	MenuSystemCode string `json:"menu_system_code" db:"menu_system_code"`
	MenuCode       string `json:"menu_code" db:"menu_code"`
}

// MenuItemPatch carries the catalog fields a partial update may change.
// Nil fields are left untouched, not nulled.
type MenuItemPatch struct {
	Status    *bool
	Price     *decimal.Decimal
	KFlag     *bool
	OtherFlag *bool
}

// MenuItemWithCode is a catalog entry joined with its optional menu code.
// Items without a matching code still appear, with the code field absent.
type MenuItemWithCode struct {
	MenuItem
	MenuCode *string `json:"menu_code,omitempty"`
}
