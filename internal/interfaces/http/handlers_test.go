package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/application/report"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/excel"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp monta el router completo sobre el almacenamiento en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ItemUC:   usecase.NewItemUseCase(store, store.Items(), log),
		LedgerUC: ledger.NewLedgerUseCase(store, store.Items(), store.Movements(), store.Reports(), ledger.NopPublisher{}, log),
		ReportUC: report.NewReportUseCase(store.Reports(), excel.NewMovementExporter(), pdf.NewMarotoPDFGenerator()),
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func assertError(t *testing.T, resp *http.Response, status int, code string) {
	t.Helper()
	assert.Equal(t, status, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, code, body.Code)
}

func createItem(t *testing.T, app *fiber.App, code string, stock int) dto.ItemResponse {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/items", dto.CreateItemRequest{
		Code: code, Name: "Item " + code, Category: "Aksesoris",
		PurchasePrice: 1000, SalePrice: 1500, Stock: stock,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ItemResponse](t, resp)
}

func appendMovement(t *testing.T, app *fiber.App, itemID int64, qty int, typ string) *http.Response {
	t.Helper()
	return doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/items/%d/movements", itemID),
		dto.MovementRequest{Quantity: qty, Type: typ})
}

// ──────────────────────────────────────────────────────────────────────────────
// Items
// ──────────────────────────────────────────────────────────────────────────────

func TestItems_CreateGetList(t *testing.T) {
	app := buildTestApp(t)
	created := createItem(t, app, "BR001", 10)
	assert.Equal(t, 10, created.Stock)

	resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/items/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.ItemResponse](t, resp)
	assert.Equal(t, "BR001", got.Code)

	resp = doRequest(t, app, http.MethodGet, "/api/items", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.ListResponse[dto.ItemResponse]](t, resp)
	assert.Equal(t, 1, list.Total)
}

func TestItems_Errors(t *testing.T) {
	app := buildTestApp(t)
	createItem(t, app, "BR001", 0)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"codigo duplicado", http.MethodPost, "/api/items", dto.CreateItemRequest{Code: "BR001", Name: "otro"}, http.StatusConflict, "DUPLICATE_CODE"},
		{"sin nombre", http.MethodPost, "/api/items", dto.CreateItemRequest{Code: "BR002"}, http.StatusBadRequest, "VALIDATION"},
		{"precio negativo", http.MethodPost, "/api/items", dto.CreateItemRequest{Code: "BR002", Name: "x", PurchasePrice: -1}, http.StatusBadRequest, "VALIDATION"},
		{"id no numerico", http.MethodGet, "/api/items/abc", nil, http.StatusBadRequest, "INVALID_ID"},
		{"item inexistente", http.MethodGet, "/api/items/999", nil, http.StatusNotFound, "NOT_FOUND"},
		{"borrar inexistente", http.MethodDelete, "/api/items/999", nil, http.StatusNotFound, "NOT_FOUND"},
		{"stock negativo", http.MethodPut, "/api/items/1/stock", map[string]int{"stock": -1}, http.StatusBadRequest, "VALIDATION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertError(t, doRequest(t, app, tt.method, tt.path, tt.body), tt.status, tt.code)
		})
	}
}

func TestItems_InvalidBody(t *testing.T) {
	app := buildTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/items", bytes.NewReader([]byte("{no-json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assertError(t, resp, http.StatusBadRequest, "INVALID_BODY")
}

func TestItems_UpdateKeepsStockAndLocksCode(t *testing.T) {
	app := buildTestApp(t)
	it := createItem(t, app, "BR001", 4)
	path := fmt.Sprintf("/api/items/%d", it.ID)

	name := "Renombrado"
	resp := doRequest(t, app, http.MethodPut, path, dto.UpdateItemRequest{Name: &name})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.ItemResponse](t, resp)
	assert.Equal(t, "Renombrado", got.Name)
	assert.Equal(t, 4, got.Stock)

	code := "BR999"
	resp = doRequest(t, app, http.MethodPut, path, dto.UpdateItemRequest{Code: &code})
	assertError(t, resp, http.StatusConflict, "CODE_LOCKED")
}

func TestItems_DeleteCascadesMovements(t *testing.T) {
	app := buildTestApp(t)
	it := createItem(t, app, "BR001", 3)
	require.Equal(t, http.StatusCreated, appendMovement(t, app, it.ID, 1, "out").StatusCode)

	resp := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/items/%d", it.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/movements", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.ListResponse[dto.MovementResponse]](t, resp)
	assert.Zero(t, list.Total)
}

// ──────────────────────────────────────────────────────────────────────────────
// Libro de movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestMovements_Flow(t *testing.T) {
	app := buildTestApp(t)
	it := createItem(t, app, "BR001", 10)

	resp := appendMovement(t, app, it.ID, 3, "out")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	res := decode[dto.MovementResult](t, resp)
	assert.Equal(t, 7, res.Item.Stock)
	assert.Equal(t, int64(1500), res.Movement.UnitPrice)
	movPath := fmt.Sprintf("/api/items/%d/movements/%d", it.ID, res.Movement.ID)

	resp = doRequest(t, app, http.MethodPut, movPath, dto.MovementRequest{Quantity: 5, Type: "in"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res = decode[dto.MovementResult](t, resp)
	assert.Equal(t, 15, res.Item.Stock)

	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/items/%d/movements", it.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.ListResponse[dto.MovementResponse]](t, resp)
	assert.Equal(t, 2, list.Total)

	resp = doRequest(t, app, http.MethodDelete, movPath, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res = decode[dto.MovementResult](t, resp)
	assert.Equal(t, 10, res.Item.Stock)

	resp = doRequest(t, app, http.MethodDelete, movPath, nil)
	assertError(t, resp, http.StatusNotFound, "NOT_FOUND")
}

func TestMovements_Errors(t *testing.T) {
	app := buildTestApp(t)
	a := createItem(t, app, "BR001", 2)
	b := createItem(t, app, "BR002", 2)

	assertError(t, appendMovement(t, app, a.ID, 5, "out"), http.StatusConflict, "INSUFFICIENT_STOCK")
	assertError(t, appendMovement(t, app, a.ID, 0, "in"), http.StatusBadRequest, "INVALID_MOVEMENT")
	assertError(t, appendMovement(t, app, a.ID, 1, "lost"), http.StatusBadRequest, "INVALID_MOVEMENT")
	assertError(t, appendMovement(t, app, 999, 1, "in"), http.StatusNotFound, "NOT_FOUND")

	resp := appendMovement(t, app, b.ID, 1, "in")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	res := decode[dto.MovementResult](t, resp)

	resp = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/items/%d/movements/%d", a.ID, res.Movement.ID), nil)
	assertError(t, resp, http.StatusBadRequest, "MOVEMENT_MISMATCH")

	resp = doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/items/%d/movements/x", a.ID), dto.MovementRequest{Quantity: 1, Type: "in"})
	assertError(t, resp, http.StatusBadRequest, "INVALID_ID")

	// el stock de a no cambió tras los rechazos
	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/items/%d", a.ID), nil)
	got := decode[dto.ItemResponse](t, resp)
	assert.Equal(t, 2, got.Stock)
}

func TestMovements_DateFilters(t *testing.T) {
	app := buildTestApp(t)
	it := createItem(t, app, "BR001", 0)
	for _, day := range []string{"2024-01-10", "2024-01-15", "2024-01-20"} {
		ts := day + "T10:00:00Z"
		resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/items/%d/movements", it.ID),
			map[string]any{"quantity": 1, "type": "in", "timestamp": ts})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doRequest(t, app, http.MethodGet, "/api/movements?from=2024-01-15", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.ListResponse[dto.MovementResponse]](t, resp)
	assert.Equal(t, 2, list.Total)

	resp = doRequest(t, app, http.MethodGet, "/api/movements/all?from=2024-01-11&to=2024-01-15", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	joined := decode[dto.ListResponse[dto.MovementWithItemResponse]](t, resp)
	require.Equal(t, 1, joined.Total)
	assert.Equal(t, "Item BR001", joined.Items[0].Item.Name)

	assertError(t, doRequest(t, app, http.MethodGet, "/api/movements?from=ayer", nil), http.StatusBadRequest, "INVALID_DATE")
	assertError(t, doRequest(t, app, http.MethodGet, "/api/movements?from=2024-02-01&to=2024-01-01", nil), http.StatusBadRequest, "INVALID_DATE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes y auditoría
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcileAndAudit(t *testing.T) {
	app := buildTestApp(t)
	it := createItem(t, app, "BR001", 5)

	resp := doRequest(t, app, http.MethodGet, "/api/audit/stock", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	audit := decode[dto.StockAuditReport](t, resp)
	assert.True(t, audit.Consistent)

	resp = doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/items/%d/stock", it.ID), map[string]any{"stock": 8, "reason": "reconteo"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.ItemResponse](t, resp)
	assert.Equal(t, 8, got.Stock)

	resp = doRequest(t, app, http.MethodGet, "/api/audit/stock", nil)
	audit = decode[dto.StockAuditReport](t, resp)
	assert.False(t, audit.Consistent)
	require.Len(t, audit.Drifted, 1)
	assert.Equal(t, 5, audit.Drifted[0].LedgerStock)
	assert.Equal(t, 3, audit.Drifted[0].Drift)
}

func TestReports(t *testing.T) {
	app := buildTestApp(t)
	createItem(t, app, "BR001", 4)

	resp := doRequest(t, app, http.MethodGet, "/api/reports/valuation", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	val := decode[dto.ValuationReportDTO](t, resp)
	require.Len(t, val.Categories, 1)
	assert.Equal(t, "4000", val.GrandTotal.String())

	resp = doRequest(t, app, http.MethodGet, "/api/reports/movements.xlsx", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "movimientos.xlsx")

	resp = doRequest(t, app, http.MethodGet, "/api/reports/movements.pdf?from=2000-01-01", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	assertError(t, doRequest(t, app, http.MethodGet, "/api/reports/movements.xlsx?to=x", nil), http.StatusBadRequest, "INVALID_DATE")
}
