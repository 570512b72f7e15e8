package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agrimitra/pkg/apperr"
	"agrimitra/pkg/middleware"
	"agrimitra/pkg/rental/controller"
	"agrimitra/pkg/rental/repository"
	"agrimitra/pkg/rental/service"
	"agrimitra/pkg/request"
)

type rentalCtrl struct{ s service.RentalService }

func New(s service.RentalService) controller.RentalController { return &rentalCtrl{s} }

type createReq struct {
	EquipmentID uint   `json:"equipment_id"`
	UserID      uint   `json:"user_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

func (h *rentalCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	if req.UserID == 0 {
		req.UserID = middleware.CallerID(c)
	}
	rt, err := h.s.CreateRental(c.Request().Context(), service.CreateRentalInput{
		EquipmentID: req.EquipmentID,
		UserID:      req.UserID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Rental created", "id": rt.ID, "rental": rt})
}

func (h *rentalCtrl) List(c echo.Context) error {
	var f repository.Filter
	var err error
	if f.UserID, err = request.QueryID(c, "user_id"); err != nil {
		return apperr.JSON(c, err)
	}
	if f.EquipmentID, err = request.QueryID(c, "equipment_id"); err != nil {
		return apperr.JSON(c, err)
	}

	out, err := apperr.Collect(h.s.ListRentals(c.Request().Context(), f))
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
