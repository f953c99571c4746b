package model

// Department represents a rental unit (an apartment) that guests book.
// It corresponds to a row in the `departments` table. A department owns
// zero or more reservations and inventory items; those live in their own
// tables and reference the department by id.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – human-friendly unit name.
//  Direction – street address of the unit.
type Department struct {
	ID        uint64 `json:"id"`        // departments.id
	Name      string `json:"name"`      // departments.name
	Direction string `json:"direction"` // departments.direction
}

// InventoryItem is a piece of equipment kept in a department (linens,
// appliances, keys). Record-only: no core logic beyond storage.
type InventoryItem struct {
	ID           uint64 `json:"id"`            // inventory_items.id
	Name         string `json:"name"`          // inventory_items.name
	Quantity     int    `json:"quantity"`      // inventory_items.quantity
	DepartmentID uint64 `json:"department_id"` // inventory_items.department_id
}
