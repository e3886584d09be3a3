package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customersvc "github.com/alejandrorivera22/ecom-cart/internal/service/customer"
)

type customerHandler struct {
	customers *customersvc.Service
}

func (h *customerHandler) list(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}
	customers, total, err := h.customers.ReadAll(c.Request.Context(), page, c.Query("sortBy"), descParam(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if len(customers) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, pageBody(customers, page, customersvc.PageSize, total))
}

func (h *customerHandler) getByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	customer, err := h.customers.FindByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *customerHandler) getByUsername(c *gin.Context) {
	customer, err := h.customers.FindByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *customerHandler) getByEmail(c *gin.Context) {
	customer, err := h.customers.FindByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *customerHandler) listDisabled(c *gin.Context) {
	customers, err := h.customers.FindDisabled(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if len(customers) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *customerHandler) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in customersvc.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	customer, err := h.customers.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *customerHandler) updateByUsername(c *gin.Context) {
	var in customersvc.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	customer, err := h.customers.UpdateByUsername(c.Request.Context(), c.Param("username"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

type addRoleRequest struct {
	CustomerID int64  `json:"customerId" binding:"required,min=1"`
	Role       string `json:"role" binding:"required"`
}

func (h *customerHandler) addRole(c *gin.Context) {
	var in addRoleRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	customer, err := h.customers.AddRole(c.Request.Context(), in.CustomerID, in.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *customerHandler) delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.customers.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
