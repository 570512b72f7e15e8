package controller

import "github.com/labstack/echo/v4"

type OrderController interface {
	Place(c echo.Context) error
	List(c echo.Context) error
	Get(c echo.Context) error
	UpdateStatus(c echo.Context) error
}
