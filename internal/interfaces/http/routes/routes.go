// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/restaurant-backend/internal/config"
	"github.com/your-org/restaurant-backend/internal/interfaces/http/handlers"
	"gorm.io/gorm"
)

// SetupIngredientRoutes sets up raw material and stock routes
func SetupIngredientRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	ingredientHandler := handlers.NewIngredientHandler(db, cfg)

	materiaPrima := rg.Group("/materia-prima")
	{
		materiaPrima.GET("", ingredientHandler.GetIngredients)
		materiaPrima.GET("/:id", ingredientHandler.GetIngredient)
		materiaPrima.POST("", ingredientHandler.CreateIngredient)
		materiaPrima.PUT("/:id", ingredientHandler.UpdateIngredient)
		materiaPrima.DELETE("/:id", ingredientHandler.DeleteIngredient)
	}

	// Distinct names feed the raw material filter dropdowns
	rg.GET("/ingredientes/nombres", ingredientHandler.GetIngredientNames)
}

// SetupPurchaseRoutes sets up purchase routes
func SetupPurchaseRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	purchaseHandler := handlers.NewPurchaseHandler(db, cfg)

	compras := rg.Group("/compras")
	{
		compras.GET("", purchaseHandler.GetPurchases)
		compras.GET("/:id", purchaseHandler.GetPurchase)
		compras.POST("", purchaseHandler.CreatePurchase)
		compras.PUT("/:id", purchaseHandler.UpdatePurchase)
		compras.DELETE("/:id", purchaseHandler.DeletePurchase)
	}
}

// SetupRecipeRoutes sets up recipe, costing and bill-of-materials routes
func SetupRecipeRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	recipeHandler := handlers.NewRecipeHandler(db, cfg)

	recetas := rg.Group("/recetas-estandar")
	{
		recetas.GET("", recipeHandler.GetRecipes)
		recetas.GET("/:id", recipeHandler.GetRecipe)
		recetas.POST("", recipeHandler.CreateRecipe)
		recetas.PUT("/:id", recipeHandler.UpdateRecipe)
		recetas.PUT("/:id/calcular-costo", recipeHandler.ApplyManualCosting)
		recetas.POST("/:id/recalcular", recipeHandler.RecomputeRecipeCost)
		recetas.GET("/:id/ingredientes", recipeHandler.GetRecipeComponents)
	}

	// Cascade delete of a recipe and its bill of materials
	rg.DELETE("/recetas/:id", recipeHandler.DeleteRecipe)

	ingredientesReceta := rg.Group("/ingredientes-receta")
	{
		ingredientesReceta.POST("", recipeHandler.AddRecipeComponent)
		ingredientesReceta.PUT("/:id", recipeHandler.UpdateRecipeComponent)
		ingredientesReceta.DELETE("/:id", recipeHandler.DeleteRecipeComponent)
	}
}

// SetupSaleRoutes sets up sale routes
func SetupSaleRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	saleHandler := handlers.NewSaleHandler(db, cfg)

	ventas := rg.Group("/ventas")
	{
		ventas.GET("", saleHandler.GetSales)
		ventas.GET("/:id", saleHandler.GetSale)
		ventas.POST("", saleHandler.CreateSale)
		ventas.PUT("/:id", saleHandler.UpdateSale)
		ventas.DELETE("/:id", saleHandler.DeleteSale)
	}
}

// SetupRoutes sets up all application routes
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	SetupIngredientRoutes(rg, db, cfg)
	SetupPurchaseRoutes(rg, db, cfg)
	SetupRecipeRoutes(rg, db, cfg)
	SetupSaleRoutes(rg, db, cfg)
}
