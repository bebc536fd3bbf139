// internal/domain/ingredient/entity.go
package ingredient

import "time"

// DateLayout is the wire format for calendar dates across the API.
const DateLayout = "2006-01-02"

// Ingredient represents a raw material with its running stock balance.
// Quantity is a ledger: it reflects the net sum of all purchase deltas ever
// applied and is mutated only through AdjustStock inside a purchase
// transaction.
type Ingredient struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"column:nombre;uniqueIndex;not null;size:100" json:"nombre"`
	Quantity    float64   `gorm:"column:cantidad;not null;default:0" json:"cantidad"`
	Unit        string    `gorm:"column:unidad;not null;size:50" json:"unidad"`
	UnitCost    float64   `gorm:"column:costo;not null;default:0" json:"costo"`
	AcquiredOn  time.Time `gorm:"column:fecha_ingreso;type:date;not null" json:"fecha_ingreso"`
	Description string    `gorm:"column:descripcion;type:text" json:"descripcion"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// TableName overrides the table name used by GORM
func (Ingredient) TableName() string {
	return "ingredientes"
}
