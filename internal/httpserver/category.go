package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lvieira/catalogo-api/internal/events"
	"github.com/lvieira/catalogo-api/internal/logging"
	"github.com/lvieira/catalogo-api/internal/service"
	"github.com/lvieira/catalogo-api/internal/transport"
)

type CategoryHTTP struct {
	Svc      *service.CatalogService
	Producer *events.Producer
}

func (h *CategoryHTTP) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicCategoryEvents, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *CategoryHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_category_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	cat, err := h.Svc.CreateCategory(ctx, req)
	if err != nil {
		l.Error("create_category_failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create category"})
	}

	h.publish(c, fmt.Sprint(cat.ID), map[string]any{
		"type":        "category_created",
		"category_id": cat.ID,
		"name":        cat.Name,
	})

	l.Info("create_category_success", "category_id", cat.ID)
	return c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHTTP) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.list")

	items, err := h.Svc.GetCategories(ctx)
	if err != nil {
		l.Error("list_categories_failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list categories"})
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CategoryHTTP) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.get")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_category_failed", "status", 400, "reason", "bad id", "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	cat, err := h.Svc.GetCategory(ctx, id)
	if err != nil {
		l.Warn("get_category_failed", "status", statusFor(err), "error", err)
		return privateError(c, err, "could not fetch category")
	}

	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHTTP) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.update")

	id, err := parseID(c)
	if err != nil {
		l.Warn("update_category_failed", "status", 400, "reason", "bad id", "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_category_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	cat, err := h.Svc.UpdateCategory(ctx, id, req)
	if err != nil {
		l.Error("update_category_failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update category"})
	}

	h.publish(c, fmt.Sprint(cat.ID), map[string]any{
		"type":        "category_updated",
		"category_id": cat.ID,
		"name":        cat.Name,
	})

	l.Info("update_category_success", "category_id", cat.ID)
	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete")

	id, err := parseID(c)
	if err != nil {
		l.Warn("delete_category_failed", "status", 400, "reason", "bad id", "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := h.Svc.DeleteCategory(ctx, id); err != nil {
		l.Warn("delete_category_failed", "status", statusFor(err), "error", err)
		return privateError(c, err, "could not delete category")
	}

	h.publish(c, fmt.Sprint(id), map[string]any{
		"type":        "category_deleted",
		"category_id": id,
	})

	l.Info("delete_category_success", "category_id", id)
	return c.JSON(http.StatusOK, echo.Map{"message": "category deleted successfully"})
}
