package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrimitra/entities"
	"agrimitra/pkg/metrics"
	"agrimitra/pkg/middleware"
)

type users map[uint]*entities.User

func (u users) Resolve(_ context.Context, id uint) (*entities.User, error) {
	if x, ok := u[id]; ok {
		return x, nil
	}
	return nil, errors.New("not found")
}

func whoServer() *echo.Echo {
	e := echo.New()
	e.Use(middleware.Identity(users{3: {ID: 3, Name: "meena", Role: entities.RoleBuyer}}))
	e.GET("/who", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"id": middleware.CallerID(c), "role": middleware.CallerRole(c)})
	})
	return e
}

func TestIdentity(t *testing.T) {
	tests := []struct {
		name   string
		header string
		cookie string
		code   int
		body   string
	}{
		{"anonymous", "", "", http.StatusOK, `{"id":0,"role":""}`},
		{"header", "3", "", http.StatusOK, `{"id":3,"role":"buyer"}`},
		{"cookie", "", "3", http.StatusOK, `{"id":3,"role":"buyer"}`},
		{"header wins", "3", "9", http.StatusOK, `{"id":3,"role":"buyer"}`},
		{"unknown", "9", "", http.StatusUnauthorized, `{"error":"unknown caller"}`},
		{"garbage", "abc", "", http.StatusUnauthorized, `{"error":"invalid caller id"}`},
	}
	e := whoServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/who", nil)
			if tt.header != "" {
				req.Header.Set(middleware.HeaderUserID, tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: middleware.CookieUserID, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	m := metrics.NopMetrics()
	e := echo.New()
	e.Use(middleware.RequestID())
	e.Use(middleware.AccessLog(zerolog.New(&buf), m))
	e.GET("/crops/:id", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	e.GET("/boom", func(c echo.Context) error { return errors.New("boom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/crops/7", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	id := rec.Header().Get(echo.HeaderXRequestID)
	require.NotEmpty(t, id)
	assert.Contains(t, buf.String(), `"request_id":"`+id+`"`)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/crops/:id", "204")))

	buf.Reset()
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/boom", "500")))
}
