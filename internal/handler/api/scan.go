package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"MarketScan/internal/domain/models"
	"MarketScan/internal/usecase"
	"MarketScan/pkg/cache"
	xhttp "MarketScan/pkg/http"
	xlogger "MarketScan/pkg/logger"
)

// ScanHandler exposes the scan pipeline over HTTP.
type ScanHandler struct {
	logger *xlogger.Logger
	gen    *usecase.ScanGenerator
	cache  *cache.Manager
}

func NewScanHandler(logger *xlogger.Logger, gen *usecase.ScanGenerator, c *cache.Manager) *ScanHandler {
	return &ScanHandler{logger: logger, gen: gen, cache: c}
}

func (h *ScanHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/scan", h.Scan)
	g.GET("/healthz", h.Health)
}

type scanRequest struct {
	Refresh bool `query:"refresh"`
}

// Scan runs the full pipeline and returns one complete market scan. With
// refresh=true the cache is cleared first, forcing fresh upstream reads.
func (h *ScanHandler) Scan(c echo.Context) error {
	req := &scanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if req.Refresh {
		if err := h.cache.Clear(c.Request().Context()); err != nil {
			h.logger.Warn("cache clear failed", xlogger.Error(err))
		}
	}

	scan, err := h.gen.GenerateDailyScan(c.Request().Context())
	if err != nil {
		h.logger.Error("scan generation failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, scanAppError(err))
	}
	return xhttp.SuccessResponse(c, scan)
}

// Health reports liveness.
func (h *ScanHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// scanAppError maps pipeline error kinds to HTTP statuses.
func scanAppError(err error) *xhttp.AppError {
	switch {
	case errors.Is(err, models.ErrRateLimited):
		return xhttp.TooManyRequestsError("upstream rate limit exceeded").WithError(err)
	case errors.Is(err, models.ErrNetwork), errors.Is(err, models.ErrMalformedData):
		return xhttp.BadGatewayError("upstream provider failed").WithError(err)
	case errors.Is(err, models.ErrMissingCredential):
		return xhttp.InternalError("provider credential not configured").WithError(err)
	default:
		return xhttp.InternalError("scan generation failed").WithError(err)
	}
}
