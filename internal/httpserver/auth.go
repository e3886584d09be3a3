package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authsvc "github.com/alejandrorivera22/ecom-cart/internal/service/auth"
	customersvc "github.com/alejandrorivera22/ecom-cart/internal/service/customer"
)

type authHandler struct {
	auth *authsvc.Service
}

func (h *authHandler) login(c *gin.Context) {
	var in authsvc.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	token, customer, err := h.auth.Login(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"username": customer.Username,
		"roles":    customer.Roles,
	})
}

func (h *authHandler) register(c *gin.Context) {
	var in customersvc.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	customer, err := h.auth.Register(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}
