package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	billingapp "github.com/amitkkna/quote-sub001/internal/application/billing"
	companyapp "github.com/amitkkna/quote-sub001/internal/application/company"
	"github.com/amitkkna/quote-sub001/internal/infrastructure/persistence"
	"github.com/amitkkna/quote-sub001/internal/interfaces/http/middleware"
	"github.com/amitkkna/quote-sub001/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// setupAPI builds a full route stack against an in-memory database with
// one seeded company.
func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := persistence.NewSQLiteDatabase(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	log := zap.NewNop()
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	quotationRepo := persistence.NewGormQuotationRepository(db.DB)

	companyService := companyapp.NewService(companyRepo, log)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, companyRepo, nil, log)
	quotationService := billingapp.NewQuotationService(quotationRepo, invoiceRepo, companyRepo, nil, log)

	engine := gin.New()
	router.NewRouter(engine).
		Register(NewCompanyHandler(companyService)).
		Register(NewInvoiceHandler(invoiceService, nil)).
		Register(NewQuotationHandler(quotationService, nil)).
		Setup()

	resp := doJSON(t, engine, http.MethodPost, "/api/v1/companies", map[string]any{
		"code":       "GDC",
		"name":       "Global Digital Connect",
		"gstin":      "22AALCG1234F1Z5",
		"state":      "Chhattisgarh",
		"state_code": "22",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestInvoiceAPI_CreateAndFetch(t *testing.T) {
	engine := setupAPI(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/invoices", map[string]any{
		"company_code": "GDC",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var inv billingapp.InvoiceResponse
	env := decodeEnvelope(t, w)
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, &inv))
	assert.NotEmpty(t, inv.ID)
	assert.Contains(t, inv.Number, "INV/GDC/")
	assert.Equal(t, "DRAFT", inv.Status)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/invoices/"+inv.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInvoiceAPI_FullEditFlow(t *testing.T) {
	engine := setupAPI(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/invoices", map[string]any{
		"company_code": "GDC",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var inv billingapp.InvoiceResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &inv))

	base := "/api/v1/invoices/" + inv.ID

	// Documents start with one default row
	require.Len(t, inv.Items, 1)
	rowID := inv.Items[0].ID

	for columnID, value := range map[string]string{
		"description": "Signage work",
		"quantity":    "2 pcs",
		"rate":        "550",
	} {
		w = doJSON(t, engine, http.MethodPut, fmt.Sprintf("%s/items/%s/field", base, rowID), map[string]any{
			"column_id": columnID,
			"value":     value,
		})
		require.Equal(t, http.StatusOK, w.Code, "set %s", columnID)
	}

	w = doJSON(t, engine, http.MethodPut, base+"/tax", map[string]any{
		"tax_type":  "cgst_sgst",
		"cgst_rate": "9",
		"sgst_rate": "9",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &inv))
	assert.Equal(t, "1100.00", inv.Totals.Subtotal)
	assert.Equal(t, "99.00", inv.Totals.CGSTAmount)
	assert.Equal(t, "99.00", inv.Totals.SGSTAmount)
	assert.Equal(t, "1298.00", inv.Totals.Total)

	w = doJSON(t, engine, http.MethodPost, base+"/issue", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &inv))
	assert.Equal(t, "ISSUED", inv.Status)

	// Issued documents are frozen
	w = doJSON(t, engine, http.MethodPost, base+"/items", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_INVALID_STATE", env.Error.Code)
}

func TestInvoiceAPI_CustomColumns(t *testing.T) {
	engine := setupAPI(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/invoices", map[string]any{
		"company_code": "GDC",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var inv billingapp.InvoiceResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &inv))
	base := "/api/v1/invoices/" + inv.ID

	w = doJSON(t, engine, http.MethodPost, base+"/columns", map[string]any{
		"display_name": "Batch No",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &inv))

	names := make([]string, 0, len(inv.Columns))
	for _, col := range inv.Columns {
		names = append(names, col.Name)
	}
	require.Contains(t, names, "Batch No")
	// Custom columns sit before Amount
	assert.Equal(t, "Amount", names[len(names)-1])
	assert.Equal(t, "Batch No", names[len(names)-2])

	w = doJSON(t, engine, http.MethodPost, base+"/columns", map[string]any{
		"display_name": "Batch No",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestInvoiceAPI_NotFoundAndBadID(t *testing.T) {
	engine := setupAPI(t)

	w := doJSON(t, engine, http.MethodGet, "/api/v1/invoices/0c7f1e3a-52cf-4644-8d66-3c8e0a7a2101", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_NOT_FOUND", env.Error.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/invoices/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuotationAPI_ConvertToInvoice(t *testing.T) {
	engine := setupAPI(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/quotations", map[string]any{
		"company_code": "GDC",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var q billingapp.QuotationResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &q))
	base := "/api/v1/quotations/" + q.ID

	require.Len(t, q.Items, 1)
	rowID := q.Items[0].ID

	w = doJSON(t, engine, http.MethodPut, fmt.Sprintf("%s/items/%s/field", base, rowID), map[string]any{
		"column_id": "rate",
		"value":     "2500",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodPost, base+"/convert", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var inv billingapp.InvoiceResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &inv))
	assert.Contains(t, inv.Number, "INV/GDC/")
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "2500.00", inv.Items[0].Amount)
}

func TestCompanyAPI_DuplicateCode(t *testing.T) {
	engine := setupAPI(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/companies", map[string]any{
		"code": "GDC",
		"name": "Another GDC",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_ALREADY_EXISTS", env.Error.Code)
}

func TestCompanyAPI_RejectsMalformedGSTIN(t *testing.T) {
	engine := setupAPI(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/companies", map[string]any{
		"code":  "GTC",
		"name":  "Global Trading Corporation",
		"gstin": "not-a-gstin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoiceAPI_ListPagination(t *testing.T) {
	engine := setupAPI(t)

	for i := 0; i < 3; i++ {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/invoices", map[string]any{
			"company_code": "GDC",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, engine, http.MethodGet, "/api/v1/invoices?page=1&page_size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Meta    *struct {
			Total      int64 `json:"total"`
			Page       int   `json:"page"`
			PageSize   int   `json:"page_size"`
			TotalPages int   `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(3), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.PageSize)
	assert.Equal(t, 2, env.Meta.TotalPages)

	var items []billingapp.InvoiceResponse
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 2)
}
