package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartsvc "github.com/alejandrorivera22/ecom-cart/internal/service/cart"
)

type cartHandler struct {
	carts *cartsvc.Service
}

func (h *cartHandler) create(c *gin.Context) {
	customerID, ok := pathID(c, "customerId")
	if !ok {
		return
	}
	cart, err := h.carts.CreateForCustomer(c.Request.Context(), customerID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cart)
}

type addProductRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func (h *cartHandler) addProduct(c *gin.Context) {
	cartID, ok := pathID(c, "cartId")
	if !ok {
		return
	}
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}
	var in addProductRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	cart, err := h.carts.AddProduct(c.Request.Context(), cartID, productID, in.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *cartHandler) removeProduct(c *gin.Context) {
	cartID, ok := pathID(c, "cartId")
	if !ok {
		return
	}
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}
	cart, err := h.carts.RemoveProduct(c.Request.Context(), cartID, productID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *cartHandler) getByID(c *gin.Context) {
	cartID, ok := pathID(c, "cartId")
	if !ok {
		return
	}
	cart, err := h.carts.FindByID(c.Request.Context(), cartID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *cartHandler) getByCustomer(c *gin.Context) {
	customerID, ok := pathID(c, "customerId")
	if !ok {
		return
	}
	cart, err := h.carts.FindByCustomer(c.Request.Context(), customerID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *cartHandler) clear(c *gin.Context) {
	cartID, ok := pathID(c, "cartId")
	if !ok {
		return
	}
	if err := h.carts.Clear(c.Request.Context(), cartID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
