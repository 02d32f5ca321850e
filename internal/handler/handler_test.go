package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ehgns852/moamoa/internal/config"
	"github.com/ehgns852/moamoa/internal/database"
	"github.com/ehgns852/moamoa/internal/router"
	"github.com/ehgns852/moamoa/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type stubUploader struct{}

func (stubUploader) Upload(_ context.Context, _ []byte, filename, dir string) (string, error) {
	return "https://cdn.test/" + dir + "/" + filename, nil
}

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Init(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "handler_test.db"),
	})
	if err != nil {
		t.Fatalf("init test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: gin.TestMode},
		JWT:      config.JWTConfig{Secret: "handler-test-secret", ExpireHours: 1},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
	}

	svc := service.NewAssetService(db, stubUploader{})
	return router.SetupRouter(cfg, db, svc)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp struct {
		Code int                    `json:"code"`
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return resp.Data
}

func registerAndLogin(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username":         username,
		"password":         "Password123",
		"confirm_password": "Password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": "Password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}

	token, _ := decodeData(t, w)["token"].(string)
	if token == "" {
		t.Fatal("login returned empty token")
	}
	return token
}

func TestAssetAPI_Unauthenticated(t *testing.T) {
	r := setupServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/asset/budgets", "", map[string]int{"budget_amount": 100})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAssetAPI_MonthlySummaryFlow(t *testing.T) {
	r := setupServer(t)
	token := registerAndLogin(t, r, "summary_user")

	// summary before any budget exists is a 404
	w := doJSON(t, r, http.MethodGet, "/api/asset/revenue-expenditures?month=2024-03", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("summary without budget status = %d, want 404", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/asset/budgets", token, map[string]int{"budget_amount": 400})
	if w.Code != http.StatusOK {
		t.Fatalf("set budget status = %d, body %s", w.Code, w.Body.String())
	}

	entries := []map[string]interface{}{
		{"revenue_expenditure_type": "REVENUE", "cost": 1000, "date": "2024-03-05", "category_name": "salary", "payment_method": "TRANSFER"},
		{"revenue_expenditure_type": "EXPENDITURE", "cost": 300, "date": "2024-03-10", "category_name": "food", "payment_method": "CARD"},
		{"revenue_expenditure_type": "EXPENDITURE", "cost": 200, "date": "2024-03-20", "category_name": "food", "payment_method": "CARD"},
	}
	for i, e := range entries {
		w = doJSON(t, r, http.MethodPost, "/api/asset/revenue-expenditures", token, e)
		if w.Code != http.StatusOK {
			t.Fatalf("add entry %d status = %d, body %s", i, w.Code, w.Body.String())
		}
	}

	w = doJSON(t, r, http.MethodGet, "/api/asset/revenue-expenditures?month=2024-03", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("summary status = %d, body %s", w.Code, w.Body.String())
	}
	data := decodeData(t, w)

	checks := map[string]float64{
		"revenue_total":     1000,
		"expenditure_total": 500,
		"remaining_budget":  -100,
		"total":             3,
	}
	for key, want := range checks {
		if got, _ := data[key].(float64); got != want {
			t.Errorf("%s = %v, want %v", key, data[key], want)
		}
	}

	// malformed month is a 400
	w = doJSON(t, r, http.MethodGet, "/api/asset/revenue-expenditures?month=march-2024", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad month status = %d, want 400", w.Code)
	}
}

func TestAssetAPI_ExpenditureRatioValidation(t *testing.T) {
	r := setupServer(t)
	token := registerAndLogin(t, r, "ratio_user")

	w := doJSON(t, r, http.MethodPost, "/api/asset/expenditure-ratios", token, map[string]int{
		"fixed": 70, "variable": 40,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid ratio status = %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/asset/expenditure-ratios", token, map[string]int{
		"fixed": 70, "variable": 30,
	})
	if w.Code != http.StatusOK {
		t.Errorf("valid ratio status = %d, body %s", w.Code, w.Body.String())
	}

	// an explicit zero side must survive binding
	w = doJSON(t, r, http.MethodPost, "/api/asset/expenditure-ratios", token, map[string]int{
		"fixed": 0, "variable": 100,
	})
	if w.Code != http.StatusOK {
		t.Errorf("zero fixed ratio status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestAssetAPI_CategoryLifecycle(t *testing.T) {
	r := setupServer(t)
	tokenA := registerAndLogin(t, r, "user_a")
	tokenB := registerAndLogin(t, r, "user_b")

	w := doJSON(t, r, http.MethodPost, "/api/asset/categories", tokenB, map[string]string{
		"category_type": "EXPENDITURE", "category_name": "rent",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("add category status = %d, body %s", w.Code, w.Body.String())
	}
	id, _ := decodeData(t, w)["id"].(float64)
	if id == 0 {
		t.Fatal("add category returned no id")
	}

	// user A must not be able to delete user B's category
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/asset/categories/%d", int(id)), tokenA, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("cross-user delete status = %d, want 404", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/asset/categories?type=EXPENDITURE", tokenB, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get categories status = %d", w.Code)
	}
	names, _ := decodeData(t, w)["categories"].([]interface{})
	if len(names) != 1 || names[0] != "rent" {
		t.Errorf("categories = %v, want [rent]", names)
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/asset/categories/%d", int(id)), tokenB, nil)
	if w.Code != http.StatusOK {
		t.Errorf("owner delete status = %d, body %s", w.Code, w.Body.String())
	}
}
