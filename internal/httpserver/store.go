package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"github.com/Skotchmaster/marketplace/internal/domain"
	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/internal/transport"
	"github.com/Skotchmaster/marketplace/internal/util"
	"github.com/Skotchmaster/marketplace/pkg/logging"
)

type StoreHTTP struct {
	Svc *service.StoreService
}

func (h *StoreHTTP) CreateStore(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.create_store")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("create_store_error", "status", 401, "reason", "no caller identity", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.StoreRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_store_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	store, err := h.Svc.CreateStore(ctx, userID, req)
	if err != nil {
		return fail(l, "create_store_error", err)
	}

	l.Info("create_store_success", "store_id", store.Store.ID)
	return c.JSON(http.StatusCreated, storeResponse(*store))
}

func (h *StoreHTTP) GetStore(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.get_store")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_store_error", "status", 400, "reason", "id not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id not a uuid")
	}

	store, err := h.Svc.GetStore(ctx, id)
	if err != nil {
		return fail(l, "get_store_error", err)
	}

	return c.JSON(http.StatusOK, storeResponse(*store))
}

func (h *StoreHTTP) UpdateStore(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.update_store")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("update_store_error", "status", 401, "reason", "no caller identity", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id, err := parseID(c)
	if err != nil {
		l.Warn("update_store_error", "status", 400, "reason", "id not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id not a uuid")
	}

	var req transport.StoreRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_store_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateStore(ctx, userID, id, req); err != nil {
		return fail(l, "update_store_error", err)
	}

	l.Info("update_store_success", "store_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *StoreHTTP) ListStores(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.list_stores")

	_, present := c.QueryParams()["include_products"]
	include := domain.ParseIncludeProducts(c.QueryParam("include_products"), present)

	stores, err := h.Svc.ListStores(ctx, include)
	if err != nil {
		return fail(l, "list_stores_error", err)
	}

	if include {
		return c.JSON(http.StatusOK, lo.Map(stores, func(d domain.StoreDetails, _ int) transport.StoreResponse {
			return storeResponse(d)
		}))
	}
	return c.JSON(http.StatusOK, lo.Map(stores, func(d domain.StoreDetails, _ int) transport.StoreListItem {
		return storeListItem(d)
	}))
}

func (h *StoreHTTP) SearchStores(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.search_stores")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	total, stores, err := h.Svc.SearchStores(ctx, c.QueryParam("q"), page, size)
	if err != nil {
		return fail(l, "search_stores_error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "stores": stores})
}
