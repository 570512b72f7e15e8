package controllerImp_test

import (
	"context"
	"encoding/json"
	"errors"
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
	"agrimitra/pkg/equipment/controllerImp"
	"agrimitra/pkg/equipment/repositoryImp"
	"agrimitra/pkg/equipment/serviceImp"
	"agrimitra/pkg/middleware"
)

type stubUsers map[uint]*entities.User

func (s stubUsers) Resolve(_ context.Context, id uint) (*entities.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, errors.New("no such user")
}

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	db := database.OpenTest(t)
	ravi := &entities.User{ID: 1, Name: "ravi", Email: "ravi@example.com", PasswordHash: "x", Role: entities.RoleFarmer}
	require.NoError(t, db.Create(ravi).Error)
	ctrl := controllerImp.New(serviceImp.NewEquipmentService(repositoryImp.New(db), zerolog.Nop()))
	e := echo.New()
	e.Use(middleware.Identity(stubUsers{1: ravi}))
	e.POST("/equipment", ctrl.Create)
	e.GET("/equipment", ctrl.List)
	e.DELETE("/equipment/:id", ctrl.Delete)
	return e
}

func do(e *echo.Echo, method, path, body string, hdr ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateEquipmentAsCaller(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodPost, "/equipment", `{"name":"Tractor","rent_price":1500}`, middleware.HeaderUserID, "1")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Message   string             `json:"message"`
		Equipment entities.Equipment `json:"equipment"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Equipment listed", created.Message)
	assert.Equal(t, uint(1), created.Equipment.FarmerID)
	assert.True(t, created.Equipment.Available)

	rec = do(e, http.MethodGet, "/equipment?available=true&farmer_id=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var views []entities.EquipmentView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "ravi", views[0].FarmerName)

	rec = do(e, http.MethodGet, "/equipment?available=0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	assert.Equal(t, http.StatusOK, do(e, http.MethodDelete, "/equipment/1", "").Code)
}

func TestEquipmentErrors(t *testing.T) {
	e := newServer(t)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/equipment", `{"name":"Tractor","rent_price":1500}`).Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodPost, "/equipment", `{"name":"Tractor","rent_price":1500}`, middleware.HeaderUserID, "4").Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/equipment?available=perhaps", "").Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodDelete, "/equipment/12", "").Code)
}
