package controllerImp_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrimitra/database"
	"agrimitra/entities"
	"agrimitra/pkg/market/controllerImp"
	"agrimitra/pkg/market/importer"
	"agrimitra/pkg/market/repositoryImp"
	"agrimitra/pkg/market/serviceImp"
	"agrimitra/pkg/metrics"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	svc := serviceImp.NewLedgerService(repositoryImp.New(database.OpenTest(t)), zerolog.Nop(), metrics.NopMetrics())
	ctrl := controllerImp.New(svc)
	e := echo.New()
	e.POST("/market-prices", ctrl.Record)
	e.GET("/market-prices", ctrl.Query)
	e.GET("/market-prices/export.xlsx", ctrl.Export)
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRecordAndQuery(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodPost, "/market-prices", `{"crop_name":"Wheat","region":"Punjab","min_price":18,"max_price":24,"avg_price":"21"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Message     string               `json:"message"`
		ID          uint                 `json:"id"`
		MarketPrice entities.MarketPrice `json:"market_price"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Market price recorded", created.Message)
	assert.Equal(t, "kg", created.MarketPrice.Unit)

	rec = do(e, http.MethodGet, "/market-prices?crop_name=wheat&limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var out []entities.MarketPrice
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, created.ID, out[0].ID)

	rec = do(e, http.MethodGet, "/market-prices?crop_name=barley", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRecordErrors(t *testing.T) {
	e := newServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"crop_name":`},
		{"missing region", `{"crop_name":"Wheat","min_price":1,"max_price":2,"avg_price":1}`},
		{"min above avg", `{"crop_name":"Wheat","region":"Punjab","min_price":5,"max_price":9,"avg_price":4}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, "/market-prices", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}

	rec := do(e, http.MethodGet, "/market-prices?limit=ten", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportXLSX(t *testing.T) {
	e := newServer(t)
	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/market-prices",
		`{"crop_name":"Onion","region":"Maharashtra","min_price":15,"max_price":25,"avg_price":20}`).Code)

	rec := do(e, http.MethodGet, "/market-prices/export.xlsx?region=maharashtra", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "market-prices.xlsx")

	rows, err := importer.ReadXLSX(bytes.NewReader(rec.Body.Bytes()), importer.ExportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Onion", rows[0].CropName)
}
