// Package request parses path and query parameters into typed values,
// reporting bad input as validation errors.
package request

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"agrimitra/pkg/apperr"
)

// ParamID parses a positive integer path parameter.
func ParamID(c echo.Context, name string) (uint, error) {
	v := c.Param(name)
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid %s %q", name, v)
	}
	return uint(id), nil
}

// QueryID parses an optional positive integer query parameter; absent is 0.
func QueryID(c echo.Context, name string) (uint, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid %s %q", name, v)
	}
	return uint(id), nil
}

// QueryDecimal parses an optional decimal query parameter; absent is nil.
func QueryDecimal(c echo.Context, name string) (*decimal.Decimal, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, apperr.Validation("invalid %s %q", name, v)
	}
	return &d, nil
}

// QueryBool parses an optional boolean query parameter. Besides the
// strconv spellings it accepts yes/no.
func QueryBool(c echo.Context, name string) (*bool, error) {
	v := c.QueryParam(name)
	switch v {
	case "":
		return nil, nil
	case "yes":
		b := true
		return &b, nil
	case "no":
		b := false
		return &b, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, apperr.Validation("invalid %s %q", name, v)
	}
	return &b, nil
}

// QueryInt parses an optional integer query parameter; absent is 0.
func QueryInt(c echo.Context, name string) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, apperr.Validation("invalid %s %q", name, v)
	}
	return n, nil
}
