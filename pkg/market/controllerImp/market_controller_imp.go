package controllerImp

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"agrimitra/pkg/apperr"
	"agrimitra/pkg/market/controller"
	"agrimitra/pkg/market/importer"
	"agrimitra/pkg/market/repository"
	"agrimitra/pkg/market/service"
	"agrimitra/pkg/request"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type marketCtrl struct{ s service.LedgerService }

func New(s service.LedgerService) controller.MarketController { return &marketCtrl{s} }

func (h *marketCtrl) Record(c echo.Context) error {
	var in service.ObservationInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	mp, err := h.s.RecordObservation(c.Request().Context(), in)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Market price recorded", "id": mp.ID, "market_price": mp})
}

func (h *marketCtrl) Query(c echo.Context) error {
	q, err := parseQuery(c)
	if err != nil {
		return apperr.JSON(c, err)
	}
	out, err := apperr.Collect(h.s.QueryObservations(c.Request().Context(), q))
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Export writes the same result set as Query as an xlsx attachment.
func (h *marketCtrl) Export(c echo.Context) error {
	q, err := parseQuery(c)
	if err != nil {
		return apperr.JSON(c, err)
	}
	rows, err := apperr.Collect(h.s.QueryObservations(c.Request().Context(), q))
	if err != nil {
		return apperr.JSON(c, err)
	}
	var buf bytes.Buffer
	if err := importer.ToXLSX(&buf, rows); err != nil {
		return apperr.JSON(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="market-prices.xlsx"`)
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

func parseQuery(c echo.Context) (repository.Query, error) {
	q := repository.Query{
		CropName: c.QueryParam("crop_name"),
		Region:   c.QueryParam("region"),
	}
	var err error
	q.Limit, err = request.QueryInt(c, "limit")
	if err != nil {
		return q, err
	}
	return q, nil
}
