package controllerImp_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"agrimitra/database"
	"agrimitra/entities"
	"agrimitra/pkg/metrics"
	"agrimitra/pkg/rental/controllerImp"
	"agrimitra/pkg/rental/repositoryImp"
	"agrimitra/pkg/rental/serviceImp"
)

func newServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	db := database.OpenTest(t)
	require.NoError(t, db.Create(&entities.User{ID: 1, Name: "ravi", Email: "ravi@example.com", PasswordHash: "x", Role: entities.RoleFarmer}).Error)
	require.NoError(t, db.Create(&entities.User{ID: 7, Name: "meena", Email: "meena@example.com", PasswordHash: "x", Role: entities.RoleBuyer}).Error)
	require.NoError(t, db.Create(&entities.Equipment{ID: 3, FarmerID: 1, Name: "Tractor", RentPrice: decimal.NewFromInt(8000), Available: true}).Error)

	ctrl := controllerImp.New(serviceImp.NewRentalService(repositoryImp.New(db), zerolog.Nop(), metrics.NopMetrics()))
	e := echo.New()
	e.POST("/rentals", ctrl.Create)
	e.GET("/rentals", ctrl.List)
	return e, db
}

func post(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateRentalEndpoint(t *testing.T) {
	e, db := newServer(t)

	rec := post(e, "/rentals", `{"equipment_id":3,"user_id":7,"start_date":"2024-06-01","end_date":"2024-06-05"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"message":"Rental created"`)
	assert.Contains(t, rec.Body.String(), `"id":1`)

	var eq entities.Equipment
	require.NoError(t, db.First(&eq, 3).Error)
	assert.False(t, eq.Available)

	rec = post(e, "/rentals", `{"equipment_id":3,"user_id":7,"start_date":"2024-06-10","end_date":"2024-06-12"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = post(e, "/rentals", `{"equipment_id":3,"user_id":7}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/rentals?user_id=7", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"equipment_name":"Tractor"`)
	assert.Contains(t, rec.Body.String(), `"renter_name":"meena"`)

	req = httptest.NewRequest(http.MethodGet, "/rentals?user_id=x", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
