// internal/domain/recipe/entity.go
package recipe

import "time"

// ComponentType distinguishes what a recipe component points at
type ComponentType string

const (
	// ComponentTypeBaseIngredient marks a component backed by a raw ingredient
	ComponentTypeBaseIngredient ComponentType = "ingrediente_base"
	// ComponentTypeSubRecipe marks a component backed by another recipe
	ComponentTypeSubRecipe ComponentType = "sub_receta"
)

// Recipe represents a dish with its derived costing figures. ComputedCost,
// SalePrice, GrossProfit and ProfitPercent are populated by the cost engine
// once components exist; a freshly created recipe carries zeros.
type Recipe struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"column:nombre_platillo;not null;size:150" json:"nombre_platillo"`
	IsFinalProduct bool      `gorm:"column:es_producto_final;not null;default:false" json:"es_producto_final"`
	ComputedCost   float64   `gorm:"column:costo_total_calculado;not null;default:0" json:"costo_total_calculado"`
	SalePrice      float64   `gorm:"column:precio_venta;not null;default:0" json:"precio_venta"`
	GrossProfit    float64   `gorm:"column:utilidad_bruta;not null;default:0" json:"utilidad_bruta"`
	ProfitPercent  float64   `gorm:"column:porcentaje_utilidad;not null;default:0" json:"porcentaje_utilidad"`
	PhotoURL       string    `gorm:"column:foto_url;size:500" json:"foto_url"`
	Description    string    `gorm:"column:descripcion;type:text" json:"descripcion"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// TableName overrides the table name used by GORM
func (Recipe) TableName() string {
	return "recetas_estandar"
}

// Component represents one line of a recipe's bill of materials. Exactly one
// of IngredientID and SubRecipeID is set, selected by ComponentType. UnitCost
// is a snapshot captured when the line was written, not a live reference:
// for a sub-recipe it holds that recipe's computed cost at capture time and
// goes stale if the sub-recipe changes afterwards.
type Component struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	RecipeID     uint          `gorm:"column:receta_id;not null;index" json:"receta_id"`
	Type         ComponentType `gorm:"column:tipo_componente;not null;size:30" json:"tipo_componente"`
	IngredientID *uint         `gorm:"column:materia_prima_id" json:"materia_prima_id"`
	SubRecipeID  *uint         `gorm:"column:subreceta_referencia_id" json:"subreceta_referencia_id"`
	DisplayName  string        `gorm:"column:nombre_componente;not null;size:150" json:"nombre_componente"`
	Quantity     float64       `gorm:"column:cantidad;not null" json:"cantidad"`
	Unit         string        `gorm:"column:unidad;size:50" json:"unidad"`
	UnitCost     *float64      `gorm:"column:costo_unitario" json:"costo_unitario"`
	TotalCost    float64       `gorm:"column:costo_total_ingrediente;not null;default:0" json:"costo_total_ingrediente"`
	CreatedAt    time.Time     `json:"-"`
	UpdatedAt    time.Time     `json:"-"`
}

// TableName overrides the table name used by GORM
func (Component) TableName() string {
	return "ingredientes_receta"
}
