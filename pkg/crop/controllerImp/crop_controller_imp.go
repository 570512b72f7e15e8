package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"agrimitra/pkg/apperr"
	"agrimitra/pkg/crop/controller"
	"agrimitra/pkg/crop/repository"
	"agrimitra/pkg/crop/service"
	"agrimitra/pkg/middleware"
	"agrimitra/pkg/request"
)

type cropCtrl struct{ s service.CropService }

func New(s service.CropService) controller.CropController { return &cropCtrl{s} }

type createReq struct {
	FarmerID uint             `json:"farmer_id"`
	CropName string           `json:"crop_name"`
	Quantity *decimal.Decimal `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
	ImageURL *string          `json:"image_url"`
}

func (h *cropCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	if req.FarmerID == 0 {
		req.FarmerID = middleware.CallerID(c)
	}
	crop, err := h.s.CreateCrop(c.Request().Context(), service.CreateCropInput{
		FarmerID: req.FarmerID,
		CropName: req.CropName,
		Quantity: req.Quantity,
		Price:    req.Price,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Crop added", "id": crop.ID, "crop": crop})
}

func (h *cropCtrl) List(c echo.Context) error {
	f := repository.Filter{Query: c.QueryParam("q")}
	var err error
	if f.FarmerID, err = request.QueryID(c, "farmer_id"); err != nil {
		return apperr.JSON(c, err)
	}
	if f.MinPrice, err = request.QueryDecimal(c, "min_price"); err != nil {
		return apperr.JSON(c, err)
	}
	if f.MaxPrice, err = request.QueryDecimal(c, "max_price"); err != nil {
		return apperr.JSON(c, err)
	}

	out, err := apperr.Collect(h.s.ListCrops(c.Request().Context(), f))
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *cropCtrl) Delete(c echo.Context) error {
	id, err := request.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	if err := h.s.DeleteCrop(c.Request().Context(), id); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Crop deleted", "id": id})
}
