package persistence

import (
	"testing"

	"github.com/craftbase/backend/internal/domain/catalog"
	"github.com/craftbase/backend/internal/domain/crm"
	"github.com/craftbase/backend/internal/domain/identity"
	"github.com/craftbase/backend/internal/domain/trade"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&identity.Tenant{},
		&catalog.Ingredient{},
		&catalog.Recipe{},
		&catalog.RecipeItem{},
		&catalog.Product{},
		&catalog.ProductRecipeComponent{},
		&catalog.ProductPackagingComponent{},
		&crm.Contact{},
		&crm.Message{},
		&trade.Order{},
		&trade.OrderItem{},
	)
	require.NoError(t, err)

	return db
}
