package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alejandrorivera22/ecom-cart/internal/domain"
	ordersvc "github.com/alejandrorivera22/ecom-cart/internal/service/order"
)

type orderHandler struct {
	orders *ordersvc.Service
}

func (h *orderHandler) create(c *gin.Context) {
	var in ordersvc.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	order, err := h.orders.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *orderHandler) list(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}
	orders, total, err := h.orders.ReadAll(c.Request.Context(), page, c.Query("sortBy"), descParam(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, pageBody(orders, page, ordersvc.PageSize, total))
}

func (h *orderHandler) getByID(c *gin.Context) {
	id, ok := pathID(c, "orderId")
	if !ok {
		return
	}
	order, err := h.orders.FindByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *orderHandler) listByCustomer(c *gin.Context) {
	customerID, ok := pathID(c, "customerId")
	if !ok {
		return
	}
	orders, err := h.orders.FindByCustomer(c.Request.Context(), customerID)
	if err != nil {
		writeError(c, err)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, orders)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *orderHandler) updateStatus(c *gin.Context) {
	id, ok := pathID(c, "orderId")
	if !ok {
		return
	}
	var in updateStatusRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), id, domain.OrderStatus(in.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *orderHandler) cancel(c *gin.Context) {
	id, ok := pathID(c, "orderId")
	if !ok {
		return
	}
	order, err := h.orders.Cancel(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
