// internal/domain/sale/entity.go
package sale

import "time"

// Sale represents a sale event recorded against a recipe. Sales are
// informational: they never touch ingredient stock or recipe costing.
type Sale struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Date          time.Time `gorm:"column:fecha;type:date;not null;index" json:"fecha"`
	RecipeID      uint      `gorm:"column:platillo_id;not null;index" json:"platillo_id"`
	Quantity      float64   `gorm:"column:cantidad;not null" json:"cantidad"`
	UnitPrice     float64   `gorm:"column:precio_unitario;not null" json:"precio_unitario"`
	Total         float64   `gorm:"column:total_venta;not null" json:"total_venta"`
	PaymentMethod string    `gorm:"column:metodo_pago;size:50" json:"metodo_pago"`
	Description   string    `gorm:"column:descripcion;type:text" json:"descripcion"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// TableName overrides the table name used by GORM
func (Sale) TableName() string {
	return "ventas"
}
