package controller

import "github.com/labstack/echo/v4"

type MarketController interface {
	Record(c echo.Context) error
	Query(c echo.Context) error
	Export(c echo.Context) error
}
