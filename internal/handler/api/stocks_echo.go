package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"StockScope/internal/domain/models"
	domrepo "StockScope/internal/domain/repository"
	"StockScope/internal/usecase"
	xhttp "StockScope/pkg/http"
	xlogger "StockScope/pkg/logger"
	"StockScope/pkg/util"
)

// StocksHandler serves the stock catalog and price history endpoints.
type StocksHandler struct {
	logger  *xlogger.Logger
	catalog *usecase.CatalogUseCase
	series  *usecase.SeriesUseCase
}

func NewStocksHandler(logger *xlogger.Logger, catalog *usecase.CatalogUseCase, series *usecase.SeriesUseCase) *StocksHandler {
	return &StocksHandler{
		logger:  logger,
		catalog: catalog,
		series:  series,
	}
}

// RegisterRoutes wires the handler into the echo instance. The static
// /stocks/search segment takes priority over /stocks/:ticker in echo's
// router, so "search" is never treated as a ticker.
func (h *StocksHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/stocks", h.ListStocks)
	g.GET("/stocks/search", h.Search)
	g.GET("/stocks/:ticker", h.GetStock)
	g.GET("/stocks/:ticker/prices", h.GetPrices)
	g.GET("/stocks/:ticker/summary", h.GetSummary)
	g.GET("/stats", h.Stats)
}

// Health reports liveness after a storage ping.
func (h *StocksHandler) Health(c echo.Context) error {
	if err := h.catalog.Health(c.Request().Context()); err != nil {
		h.logger.Error("health check failed", xlogger.Error(err))
		return xhttp.ErrorResponse(c, http.StatusServiceUnavailable, "storage unavailable")
	}
	return xhttp.SuccessResponse(c, xhttp.HealthBody{Status: "ok"})
}

// ListStocks returns every stock ordered by ticker.
func (h *StocksHandler) ListStocks(c echo.Context) error {
	stocks, err := h.catalog.ListStocks(c.Request().Context())
	if err != nil {
		h.logger.Error("list stocks failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, models.NewStockList(stocks))
}

// Search returns ranked matches for a free-text query. An empty query
// yields an empty list.
func (h *StocksHandler) Search(c echo.Context) error {
	req := &models.SearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ValidationErrorResponse(c, verr)
	}

	results, err := h.catalog.Search(c.Request().Context(), req.Query, req.Limit)
	if err != nil {
		h.logger.Error("search failed", xlogger.String("query", req.Query), xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, results)
}

// GetStock returns metadata for a single ticker.
func (h *StocksHandler) GetStock(c echo.Context) error {
	ticker := util.NormalizeTicker(c.Param("ticker"))

	stock, err := h.catalog.GetStock(c.Request().Context(), ticker)
	if err != nil {
		return h.respondError(c, ticker, err)
	}
	return xhttp.SuccessResponse(c, models.NewStockDetail(stock))
}

// GetPrices returns the daily bars for a ticker over the requested period.
// A known ticker whose bars all predate the window yields an empty list,
// not an error.
func (h *StocksHandler) GetPrices(c echo.Context) error {
	ticker := util.NormalizeTicker(c.Param("ticker"))

	req := &models.PricesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ValidationErrorResponse(c, verr)
	}

	bars, err := h.series.GetSeries(c.Request().Context(), ticker, domrepo.Period(req.Period))
	if err != nil {
		return h.respondError(c, ticker, err)
	}
	return xhttp.SuccessResponse(c, models.NewPriceBarItems(bars))
}

// GetSummary returns close-based aggregates for a ticker over the
// requested period.
func (h *StocksHandler) GetSummary(c echo.Context) error {
	ticker := util.NormalizeTicker(c.Param("ticker"))

	req := &models.SummaryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ValidationErrorResponse(c, verr)
	}

	stats, err := h.series.GetSummary(c.Request().Context(), ticker, domrepo.Period(req.Period))
	if err != nil {
		return h.respondError(c, ticker, err)
	}
	return xhttp.SuccessResponse(c, models.NewSummaryResponse(ticker, req.Period, stats))
}

// Stats returns dataset-wide row counts and the most recent bar date.
func (h *StocksHandler) Stats(c echo.Context) error {
	totals, err := h.catalog.Totals(c.Request().Context())
	if err != nil {
		h.logger.Error("stats failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, models.NewStatsResponse(totals))
}

// respondError maps domain errors onto their HTTP shapes. Anything
// unrecognized is logged and reported as a 500.
func (h *StocksHandler) respondError(c echo.Context, ticker string, err error) error {
	switch {
	case errors.Is(err, models.ErrStockNotFound):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("Stock '%s' not found", ticker))
	case errors.Is(err, models.ErrNoPriceData):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("No price data found for '%s'", ticker))
	case errors.Is(err, models.ErrInvalidPeriod):
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("Invalid period. Valid options: 1y, 2y, 5y"))
	case errors.Is(err, models.ErrZeroFirstClose):
		return xhttp.AppErrorResponse(c, xhttp.UnprocessableError("period return undefined: first close is zero"))
	default:
		h.logger.Error("stocks api error",
			xlogger.String("ticker", ticker),
			xlogger.Error(err),
		)
		return xhttp.InternalServerErrorResponse(c)
	}
}
