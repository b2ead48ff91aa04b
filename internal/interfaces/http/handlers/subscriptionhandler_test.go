package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subtrack/internal/application/subscription/usecases"
)

func newSubscriptionRouter(store *memoryStore, users *memoryUsers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := newTestLogger()

	handler := NewSubscriptionHandler(
		usecases.NewCreateSubscriptionUseCase(store, users, log),
		usecases.NewBulkCreateSubscriptionsUseCase(store, users, log),
		usecases.NewListSubscriptionsUseCase(store, log),
		log,
	)

	engine := gin.New()
	engine.POST("/api/subscriptions", handler.CreateSubscription)
	engine.POST("/api/subscriptions/bulk", handler.BulkCreateSubscriptions)
	engine.GET("/api/subscriptions", handler.ListSubscriptions)
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestSubscriptionHandler_CreateSubscription(t *testing.T) {
	store := newMemoryStore()
	users := newMemoryUsers()
	users.addUser(1, "ana@example.com", "Ana")

	engine := newSubscriptionRouter(store, users)

	rec := postJSON(t, engine, "/api/subscriptions", gin.H{
		"user_id":       1,
		"name":          "Netflix",
		"price":         39.90,
		"currency":      "BRL",
		"billing_cycle": "monthly",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.subs, 1)
	assert.Equal(t, "Netflix", store.subs[0].Name())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "active", resp.Data.Status)
}

func TestSubscriptionHandler_CreateSubscriptionInvalidCurrency(t *testing.T) {
	engine := newSubscriptionRouter(newMemoryStore(), newMemoryUsers())

	rec := postJSON(t, engine, "/api/subscriptions", gin.H{
		"user_id":       1,
		"name":          "Netflix",
		"price":         39.90,
		"currency":      "EUR",
		"billing_cycle": "monthly",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubscriptionHandler_CreateSubscriptionUnknownUser(t *testing.T) {
	engine := newSubscriptionRouter(newMemoryStore(), newMemoryUsers())

	rec := postJSON(t, engine, "/api/subscriptions", gin.H{
		"user_id":       42,
		"name":          "Netflix",
		"price":         39.90,
		"currency":      "BRL",
		"billing_cycle": "monthly",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubscriptionHandler_BulkCreateSubscriptions(t *testing.T) {
	store := newMemoryStore()
	users := newMemoryUsers()
	users.addUser(1, "ana@example.com", "Ana")

	engine := newSubscriptionRouter(store, users)

	rec := postJSON(t, engine, "/api/subscriptions/bulk", gin.H{
		"user_id": 1,
		"subscriptions": []gin.H{
			{"user_id": 1, "name": "Netflix", "price": 39.90, "currency": "BRL", "billing_cycle": "monthly"},
			{"user_id": 1, "name": "Spotify", "price": 19.90, "currency": "BRL", "billing_cycle": "monthly"},
		},
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, store.subs, 2)

	var resp struct {
		Data struct {
			Created int `json:"created"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.Created)
}

func TestSubscriptionHandler_ListSubscriptions(t *testing.T) {
	store := newMemoryStore()
	store.add(activeSubscription(t, 1, "Netflix", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	store.add(activeSubscription(t, 1, "Spotify", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))

	engine := newSubscriptionRouter(store, newMemoryUsers())

	req := httptest.NewRequest(http.MethodGet, "/api/subscriptions?page=1&page_size=20", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Items []json.RawMessage `json:"items"`
			Total int64             `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Data.Total)
	assert.Len(t, resp.Data.Items, 2)
}
