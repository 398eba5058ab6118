package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/yieldbot/base/ctx"
	"github.com/x-xyz/yieldbot/base/delivery"
	"github.com/x-xyz/yieldbot/domain"
	"github.com/x-xyz/yieldbot/domain/yield"
)

type yieldHandler struct {
	yields yield.Service
}

func New(e *echo.Echo, yields yield.Service, authMiddleware, adminMiddleware echo.MiddlewareFunc) {
	h := &yieldHandler{yields: yields}

	caches := e.Group("/caches")
	caches.GET("", h.status)
	caches.POST("/refresh", h.refresh, authMiddleware, adminMiddleware)

	g := e.Group("/yields")
	g.GET("/top", h.top)
	g.GET("/asset/:asset", h.asset)
	g.GET("/chain/:chain", h.chain)
}

type topParams struct {
	N int `query:"n" validate:"omitempty,oneof=1 3 10"`
}

func (h *yieldHandler) status(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	return delivery.MakeJsonResp(c, http.StatusOK, h.yields.Status(ctx))
}

func (h *yieldHandler) refresh(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	res := h.yields.ForceRefreshAllCaches(ctx)
	if res.Status == yield.RefreshFailed {
		return delivery.MakeJsonResp(c, http.StatusBadGateway, res)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *yieldHandler) top(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	params := topParams{}
	if err := c.Bind(&params); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(&params); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	switch params.N {
	case 3:
		return delivery.MakeJsonResp(c, http.StatusOK, h.yields.TopThreeAPY(ctx))
	case 10:
		return delivery.MakeJsonResp(c, http.StatusOK, h.yields.TopTenAPY(ctx))
	default:
		top, ok := h.yields.TopAPY(ctx)
		if !ok {
			return delivery.MakeJsonResp(c, http.StatusNotFound, domain.ErrNotFound)
		}
		return delivery.MakeJsonResp(c, http.StatusOK, []yield.Record{top})
	}
}

func (h *yieldHandler) asset(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	return delivery.MakeJsonResp(c, http.StatusOK, h.yields.TopAPYForAsset(ctx, c.Param("asset")))
}

func (h *yieldHandler) chain(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	return delivery.MakeJsonResp(c, http.StatusOK, h.yields.TopAPYForChain(ctx, c.Param("chain")))
}
