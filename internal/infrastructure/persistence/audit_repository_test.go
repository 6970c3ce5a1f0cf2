package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hrs/backend/internal/domain/audit"
	"github.com/hrs/backend/internal/infrastructure/persistence/models"
)

func setupAuditTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.AuditEntryModel{})
	require.NoError(t, err)

	return db
}

func TestAuditRepository(t *testing.T) {
	db := setupAuditTestDB(t)
	repo := NewGormAuditRepository(db)
	ctx := context.Background()

	requestID := uuid.New().String()
	actorID := uuid.New()

	t.Run("appends and reads back entries in order", func(t *testing.T) {
		created := audit.NewEntry("request.created", "Request", requestID, &actorID, map[string]interface{}{
			"region": "REG-CENTRE",
		})
		require.NoError(t, repo.Append(ctx, created))

		decided := audit.NewEntry("request.manager_decided", "Request", requestID, &actorID, map[string]interface{}{
			"approved": true,
		})
		require.NoError(t, repo.Append(ctx, decided))

		entries, err := repo.FindByEntity(ctx, "Request", requestID)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "request.created", entries[0].Action)
		assert.Equal(t, "request.manager_decided", entries[1].Action)
		assert.Equal(t, "REG-CENTRE", entries[0].Metadata["region"])
		require.NotNil(t, entries[1].ActorID)
		assert.Equal(t, actorID, *entries[1].ActorID)
	})

	t.Run("scopes by entity", func(t *testing.T) {
		entries, err := repo.FindByEntity(ctx, "Request", uuid.New().String())
		require.NoError(t, err)
		assert.Len(t, entries, 0)
	})
}
