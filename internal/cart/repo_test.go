package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wastewise/wastewise-backend/pkg/db/models"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  name TEXT NOT NULL,
  unit_price NUMERIC NOT NULL,
  quantity INTEGER NOT NULL,
  image_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newTestCartItem(sessionID uuid.UUID, name string, price int64, quantity int) *models.CartItem {
	return &models.CartItem{
		ID:        uuid.New(),
		SessionID: sessionID,
		Name:      name,
		UnitPrice: decimal.NewFromInt(price),
		Quantity:  quantity,
	}
}

func TestCartRepositoryLineLifecycle(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	sessionID := uuid.New()

	item := newTestCartItem(sessionID, "Bamboo Toothbrush", 99, 1)
	require.NoError(t, repo.Create(ctx, item))

	found, err := repo.FindLine(ctx, sessionID, "Bamboo Toothbrush")
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)
	assert.Equal(t, 1, found.Quantity)

	found.Quantity = 4
	require.NoError(t, repo.Update(ctx, found))

	updated, err := repo.FindLine(ctx, sessionID, "Bamboo Toothbrush")
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	require.NoError(t, repo.DeleteLine(ctx, sessionID, "Bamboo Toothbrush"))
	_, err = repo.FindLine(ctx, sessionID, "Bamboo Toothbrush")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartRepositoryScopesToSession(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	mine := uuid.New()
	theirs := uuid.New()
	require.NoError(t, repo.Create(ctx, newTestCartItem(mine, "Recycled Notebook", 199, 2)))
	require.NoError(t, repo.Create(ctx, newTestCartItem(theirs, "Jute Bag", 149, 1)))

	items, err := repo.FindBySession(ctx, mine)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Recycled Notebook", items[0].Name)

	require.NoError(t, repo.DeleteBySession(ctx, mine))

	items, err = repo.FindBySession(ctx, mine)
	require.NoError(t, err)
	assert.Empty(t, items)

	others, err := repo.FindBySession(ctx, theirs)
	require.NoError(t, err)
	assert.Len(t, others, 1)
}
