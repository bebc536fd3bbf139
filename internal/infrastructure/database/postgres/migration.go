// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/restaurant-backend/internal/domain/ingredient"
	"github.com/your-org/restaurant-backend/internal/domain/purchase"
	"github.com/your-org/restaurant-backend/internal/domain/recipe"
	"github.com/your-org/restaurant-backend/internal/domain/sale"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Define all models that need migration in dependency order
	models := []interface{}{
		// Durable aggregates
		&ingredient.Ingredient{},
		&recipe.Recipe{},

		// Event and attachment records
		&purchase.Purchase{},
		&recipe.Component{},
		&sale.Sale{},
	}

	// Run auto-migration for each model
	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// Purchase lookups by date and referenced ingredient name
		"CREATE INDEX IF NOT EXISTS idx_compras_fecha_id ON compras(fecha DESC, id DESC)",
		"CREATE INDEX IF NOT EXISTS idx_compras_producto ON compras(producto)",

		// Bill of materials lookups per recipe
		"CREATE INDEX IF NOT EXISTS idx_ingredientes_receta_receta ON ingredientes_receta(receta_id)",

		// Recipe listings filtered on the final-product flag
		"CREATE INDEX IF NOT EXISTS idx_recetas_estandar_final ON recetas_estandar(es_producto_final)",

		// Sale listings by date
		"CREATE INDEX IF NOT EXISTS idx_ventas_fecha_id ON ventas(fecha DESC, id DESC)",
		"CREATE INDEX IF NOT EXISTS idx_ventas_platillo ON ventas(platillo_id)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("✅ Database indexes created successfully")
	return nil
}
