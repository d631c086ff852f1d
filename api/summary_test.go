package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryHandler_GetSpendSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `receipts`").
		WithArgs(uint(1), "2024-01-01", "2024-12-31").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(total\\), 0\\) FROM `receipts`").
		WithArgs(uint(1), "2024-01-01", "2024-12-31").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(1234.56))

	router := gin.New()
	router.Use(setAuthContext(1, 123456))
	router.GET("/statistics/summary", NewSummaryHandler().GetSpendSummary)

	req := httptest.NewRequest("GET", "/statistics/summary?date_from=2024-01-01&date_to=2024-12-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			TotalSpend   float64 `json:"total_spend"`
			ReceiptCount int64   `json:"receipt_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1234.56, resp.Data.TotalSpend)
	assert.Equal(t, int64(42), resp.Data.ReceiptCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryHandler_GetSpendSummary_NoRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 不传日期则统计全部时间
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `receipts`").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(total\\), 0\\) FROM `receipts`").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(0.0))

	router := gin.New()
	router.Use(setAuthContext(1, 123456))
	router.GET("/statistics/summary", NewSummaryHandler().GetSpendSummary)

	req := httptest.NewRequest("GET", "/statistics/summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			TotalSpend   float64 `json:"total_spend"`
			ReceiptCount int64   `json:"receipt_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0.0, resp.Data.TotalSpend)
	assert.Equal(t, int64(0), resp.Data.ReceiptCount)
	require.NoError(t, mock.ExpectationsWereMet())
}
