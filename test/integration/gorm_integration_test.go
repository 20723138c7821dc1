package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-docdraft-be/internal/entity"
	"ai-docdraft-be/internal/repository/specification"
	"ai-docdraft-be/internal/repository/unitofwork"
	"ai-docdraft-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.TemplateRepository())
	assert.NotNil(t, uow.DocumentRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Template round trip", func(t *testing.T) {
		ctx := context.Background()
		tpl := entity.Template{
			Id:          uuid.New(),
			Name:        "Integration Test Template " + uuid.NewString()[:8],
			Description: "created by integration test",
			Content:     "Hello {name}",
			Category:    "test",
			IsActive:    true,
			CreatedAt:   time.Now(),
		}
		require.NoError(t, uow.TemplateRepository().Create(ctx, &tpl))
		defer uow.TemplateRepository().Delete(ctx, tpl.Id)

		found, err := uow.TemplateRepository().FindOne(ctx, specification.ByID{ID: tpl.Id})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, tpl.Name, found.Name)
	})

	t.Run("Document round trip", func(t *testing.T) {
		ctx := context.Background()
		doc := entity.Document{
			Id:           uuid.New(),
			Title:        "Integration Test Document",
			Content:      "Hello World",
			FilledValues: map[string]string{"name": "World"},
			CreatedAt:    time.Now(),
		}
		require.NoError(t, uow.DocumentRepository().Create(ctx, &doc))
		defer uow.DocumentRepository().Delete(ctx, doc.Id)

		found, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: doc.Id})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "World", found.FilledValues["name"])
	})
}
