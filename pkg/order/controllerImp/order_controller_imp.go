package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"agrimitra/entities"
	"agrimitra/pkg/apperr"
	"agrimitra/pkg/middleware"
	"agrimitra/pkg/order/controller"
	"agrimitra/pkg/order/repository"
	"agrimitra/pkg/order/service"
	"agrimitra/pkg/request"
)

type orderCtrl struct{ s service.OrderService }

func New(s service.OrderService) controller.OrderController { return &orderCtrl{s} }

type placeReq struct {
	CropID   *uint            `json:"crop_id"`
	BuyerID  *uint            `json:"buyer_id"`
	BidPrice *decimal.Decimal `json:"bid_price"`
}

func (h *orderCtrl) Place(c echo.Context) error {
	var req placeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	in := service.PlaceOrderInput{BidPrice: req.BidPrice}
	if req.CropID != nil {
		in.CropID = *req.CropID
	}
	if req.BuyerID != nil {
		in.BuyerID = *req.BuyerID
	} else {
		in.BuyerID = middleware.CallerID(c)
	}

	o, err := h.s.PlaceOrder(c.Request().Context(), in)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Order/Bid placed", "id": o.ID, "order": o})
}

func (h *orderCtrl) List(c echo.Context) error {
	var f repository.Filter
	var err error
	if f.BuyerID, err = request.QueryID(c, "buyer_id"); err != nil {
		return apperr.JSON(c, err)
	}
	if f.FarmerID, err = request.QueryID(c, "farmer_id"); err != nil {
		return apperr.JSON(c, err)
	}
	f.Status = entities.OrderStatus(c.QueryParam("status"))

	out, err := apperr.Collect(h.s.ListOrders(c.Request().Context(), f))
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *orderCtrl) Get(c echo.Context) error {
	id, err := request.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	o, err := h.s.GetOrder(c.Request().Context(), id)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *orderCtrl) UpdateStatus(c echo.Context) error {
	id, err := request.ParamID(c, "id")
	if err != nil {
		return apperr.JSON(c, err)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	o, err := h.s.UpdateOrderStatus(c.Request().Context(), id, body.Status)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Order updated", "order": o})
}
