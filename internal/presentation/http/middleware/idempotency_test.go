package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/entity"
	infraRepo "github.com/tyreshoppe/shopdesk-api/internal/infrastructure/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newIdempotencyRouter(t *testing.T, handlerCalls *atomic.Int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.IdempotencyKey{}))

	userID := uuid.New()
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
	})
	router.Use(Idempotency(IdempotencyConfig{Repo: infraRepo.NewIdempotencyRepository(db)}))
	router.POST("/orders/complete", func(c *gin.Context) {
		handlerCalls.Add(1)
		c.JSON(200, gin.H{"done": true})
	})
	return router
}

func TestIdempotencyReplaysKeyedRequests(t *testing.T) {
	var handlerCalls atomic.Int64
	router := newIdempotencyRouter(t, &handlerCalls)

	send := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/orders/complete", nil)
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	first := send("key-1")
	require.Equal(t, http.StatusOK, first.Code)
	require.EqualValues(t, 1, handlerCalls.Load())

	// Same key replays the stored response without re-running the handler.
	second := send("key-1")
	require.Equal(t, http.StatusOK, second.Code)
	require.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	require.Equal(t, first.Body.String(), second.Body.String())
	require.EqualValues(t, 1, handlerCalls.Load())

	// No key passes through untouched.
	third := send("")
	require.Equal(t, http.StatusOK, third.Code)
	require.EqualValues(t, 2, handlerCalls.Load())
}
