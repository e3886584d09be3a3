package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	orderdetailsvc "github.com/alejandrorivera22/ecom-cart/internal/service/orderdetail"
)

type orderDetailHandler struct {
	details *orderdetailsvc.Service
}

func (h *orderDetailHandler) list(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}
	lines, total, err := h.details.ReadAll(c.Request.Context(), page, c.Query("sortBy"), descParam(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if len(lines) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, pageBody(lines, page, orderdetailsvc.PageSize, total))
}

func (h *orderDetailHandler) listByOrder(c *gin.Context) {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return
	}
	lines, err := h.details.FindByOrderID(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

func (h *orderDetailHandler) listByProduct(c *gin.Context) {
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}
	lines, err := h.details.FindByProductID(c.Request.Context(), productID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lines)
}
