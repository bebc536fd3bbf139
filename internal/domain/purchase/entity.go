// internal/domain/purchase/entity.go
package purchase

import "time"

// Purchase represents a purchase event recorded against an ingredient.
// ProductName references the ingredient by its unique name, not by foreign
// key; Unit and UnitCost are snapshots copied from the ingredient at the
// moment of creation (or re-snapshotted on update).
type Purchase struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProductName string    `gorm:"column:producto;not null;size:100;index" json:"producto"`
	Quantity    float64   `gorm:"column:cantidad;not null" json:"cantidad"`
	Unit        string    `gorm:"column:unidad;size:50" json:"unidad"`
	UnitCost    float64   `gorm:"column:costo_unitario;not null;default:0" json:"costo_unitario"`
	TotalCost   float64   `gorm:"column:costo_total;not null;default:0" json:"costo_total"`
	Date        time.Time `gorm:"column:fecha;type:date;not null;index" json:"fecha"`
	CreatedAt   time.Time `gorm:"column:fecha_creacion" json:"fecha_creacion"`
	UpdatedAt   time.Time `gorm:"column:fecha_actualizacion" json:"fecha_actualizacion"`
}

// TableName overrides the table name used by GORM
func (Purchase) TableName() string {
	return "compras"
}
