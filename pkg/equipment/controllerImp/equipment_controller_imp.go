package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"agrimitra/pkg/apperr"
	"agrimitra/pkg/equipment/controller"
	"agrimitra/pkg/equipment/repository"
	"agrimitra/pkg/equipment/service"
	"agrimitra/pkg/middleware"
	"agrimitra/pkg/request"
)

type equipmentCtrl struct{ s service.EquipmentService }

func New(s service.EquipmentService) controller.EquipmentController { return &equipmentCtrl{s} }

type createReq struct {
	FarmerID  uint             `json:"farmer_id"`
	Name      string           `json:"name"`
	RentPrice *decimal.Decimal `json:"rent_price"`
}

func (h *equipmentCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	if req.FarmerID == 0 {
		req.FarmerID = middleware.CallerID(c)
	}
	e, err := h.s.CreateEquipment(c.Request().Context(), service.CreateEquipmentInput{
		FarmerID:  req.FarmerID,
		Name:      req.Name,
		RentPrice: req.RentPrice,
	})
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Equipment listed", "id": e.ID, "equipment": e})
}

func (h *equipmentCtrl) List(c echo.Context) error {
	var f repository.Filter
	var err error
	if f.FarmerID, err = request.QueryID(c, "farmer_id"); err != nil {
		return apperr.JSON(c, err)
	}
	if f.Available, err = request.QueryBool(c, "available"); err != nil {
		return apperr.JSON(c, err)
	}

	out, err := apperr.Collect(h.s.ListEquipment(c.Request().Context(), f))
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *equipmentCtrl) Delete(c echo.Context) error {
	id, err := request.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	if err := h.s.DeleteEquipment(c.Request().Context(), id); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Equipment deleted", "id": id})
}
