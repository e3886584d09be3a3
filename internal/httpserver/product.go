package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	productsvc "github.com/alejandrorivera22/ecom-cart/internal/service/product"
)

type productHandler struct {
	products *productsvc.Service
}

func (h *productHandler) list(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}
	products, total, err := h.products.ReadAll(c.Request.Context(), page, c.Query("sortBy"), descParam(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if len(products) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, pageBody(products, page, productsvc.PageSize, total))
}

func (h *productHandler) getByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.products.FindByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *productHandler) listByCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	products, err := h.products.FindByCategory(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if len(products) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *productHandler) listDisabled(c *gin.Context) {
	products, err := h.products.FindDisabled(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if len(products) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *productHandler) create(c *gin.Context) {
	var in productsvc.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	product, err := h.products.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *productHandler) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in productsvc.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	product, err := h.products.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

type updateStockRequest struct {
	Stock *int `json:"stock" binding:"required"`
}

func (h *productHandler) updateStock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in updateStockRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	product, err := h.products.UpdateStock(c.Request.Context(), id, *in.Stock)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *productHandler) delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
