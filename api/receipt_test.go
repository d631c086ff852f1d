package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var receiptTestColumns = []string{
	"id", "date", "total", "currency", "paid_cash", "paid_card", "created_at",
	"company_id", "company_name", "category_id", "category_name", "category_icon",
}

func TestReceiptHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs(int64(123456), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `receipts`").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectQuery("SELECT receipts\\.id, .* FROM `receipts`").
		WithArgs(uint(1), 30).
		WillReturnRows(sqlmock.NewRows(receiptTestColumns).
			AddRow(2, "2024-06-16", 20.0, "EUR", nil, nil, time.Now(), 1, "超市A", 1, "餐饮", "🍜").
			AddRow(1, "2024-06-15", 10.0, "EUR", nil, nil, time.Now(), nil, nil, nil, nil, nil))

	router := gin.New()
	router.Use(setAuthContext(1, 123456))
	router.GET("/receipts", NewReceiptHandler().List)

	req := httptest.NewRequest("GET", "/receipts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			Receipts   []json.RawMessage `json:"receipts"`
			HasMore    bool              `json:"has_more"`
			TotalCount int64             `json:"total_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Receipts, 2)
	assert.Equal(t, int64(2), resp.Data.TotalCount)
	assert.False(t, resp.Data.HasMore)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiptHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 取用户偏好币种
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs(uint(1), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "telegram_id", "preferred_currency", "is_active", "deleted_at"}).
			AddRow(1, 123456, "EUR", true, nil))

	// 商家不存在则创建
	mock.ExpectQuery("SELECT .* FROM `companies`").
		WithArgs("Acme", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `companies`").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `receipts`").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setAuthContext(1, 123456))
	router.POST("/receipts", NewReceiptHandler().Create)

	body := `{"company_name":"Acme","date":"2024-06-15","total":42.50}`
	req := httptest.NewRequest("POST", "/receipts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "创建成功", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiptHandler_Create_PaymentSplitMismatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setAuthContext(1, 123456))
	router.POST("/receipts", NewReceiptHandler().Create)

	// 现金+刷卡与总额不符，校验失败不应触及数据库
	body := `{"date":"2024-06-15","total":42.50,"paid_cash":10,"paid_card":10}`
	req := httptest.NewRequest("POST", "/receipts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "总额不符")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiptHandler_Create_InvalidDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setAuthContext(1, 123456))
	router.POST("/receipts", NewReceiptHandler().Create)

	body := `{"date":"15/06/2024","total":42.50}`
	req := httptest.NewRequest("POST", "/receipts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "日期格式错误")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiptHandler_Create_InvalidCategory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs(uint(1), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "preferred_currency", "deleted_at"}).
			AddRow(1, "EUR", nil))

	// 商家为空不查库，直接查类别
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(uint(99), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "icon"}))

	router := gin.New()
	router.Use(setAuthContext(1, 123456))
	router.POST("/receipts", NewReceiptHandler().Create)

	body := `{"category_id":99,"date":"2024-06-15","total":42.50}`
	req := httptest.NewRequest("POST", "/receipts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "无效的类别")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiptHandler_Delete_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 归属校验：只能操作自己的小票
	mock.ExpectQuery("SELECT .* FROM `receipts`").
		WithArgs(uint64(7), uint(1), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	router := gin.New()
	router.Use(setAuthContext(1, 123456))
	router.DELETE("/receipts/:id", NewReceiptHandler().Delete)

	req := httptest.NewRequest("DELETE", "/receipts/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiptHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `receipts`").
		WithArgs(uint64(7), uint(1), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "date", "total", "currency"}).
			AddRow(7, 1, "2024-06-15", 10.0, "EUR"))

	// 先删明细再删小票
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `items`").
		WithArgs(uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `receipts`").
		WithArgs(uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setAuthContext(1, 123456))
	router.DELETE("/receipts/:id", NewReceiptHandler().Delete)

	req := httptest.NewRequest("DELETE", "/receipts/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "删除成功")
	require.NoError(t, mock.ExpectationsWereMet())
}
