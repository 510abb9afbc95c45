package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	reqdto "voucher-engine/internal/handler/dto/request"
	resdto "voucher-engine/internal/handler/dto/response"
	"voucher-engine/internal/handler/middleware"
	"voucher-engine/internal/usecase/commands"
	"voucher-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VoucherHandler struct {
	voucherQueries  queries.VoucherQueries
	voucherCommands commands.VoucherCommands
}

func NewVoucherHandler(voucherQueries queries.VoucherQueries, voucherCommands commands.VoucherCommands) *VoucherHandler {
	return &VoucherHandler{
		voucherQueries:  voucherQueries,
		voucherCommands: voucherCommands,
	}
}

// @Summary Validate voucher
// @Description Dry-run eligibility check; nothing is locked or consumed
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ValidateVoucherRequest true "Validation request"
// @Success 200 {object} queries.ValidationView
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /vouchers/validate [post]
func (h *VoucherHandler) Validate(c *gin.Context) {
	var req reqdto.ValidateVoucherRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.voucherQueries.Validate(c.Request.Context(), queries.ValidationRequest{
		Code:         req.Code,
		RestaurantID: req.RestaurantID,
		OrderAmount:  req.OrderAmount,
		AsOf:         req.AsOf,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Apply voucher
// @Description Validate and consume the voucher atomically against a booking
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ApplyVoucherRequest true "Apply request"
// @Success 200 {object} resdto.ApplyVoucherResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /vouchers/apply [post]
func (h *VoucherHandler) Apply(c *gin.Context) {
	customerID, ok := middleware.GetCustomerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.ApplyVoucherRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result := h.voucherCommands.Redeem(c.Request.Context(), commands.ApplyRequest{
		Code:         req.Code,
		CustomerID:   customerID,
		RestaurantID: req.RestaurantID,
		BookingID:    req.BookingID,
		OrderAmount:  req.OrderAmount,
	})

	c.JSON(http.StatusOK, resdto.FromApplyResult(result))
}

// @Summary List my vouchers
// @Description List vouchers available to the authenticated customer
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CustomerVouchersResponse
// @Failure 401 {object} map[string]string
// @Router /vouchers/mine [get]
func (h *VoucherHandler) ListMine(c *gin.Context) {
	customerID, ok := middleware.GetCustomerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.voucherQueries.ListForCustomer(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.CustomerVouchersResponse{Vouchers: views})
}

// @Summary Assign voucher
// @Description Grant a voucher to a customer; re-assigning is a no-op
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Voucher ID"
// @Param request body reqdto.AssignVoucherRequest true "Assignment request"
// @Success 200 {object} resdto.AssignVoucherResponse
// @Success 201 {object} resdto.AssignVoucherResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /vouchers/{id}/assignments [post]
func (h *VoucherHandler) Assign(c *gin.Context) {
	voucherID, err := parseVoucherID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid voucher ID format",
		})
		return
	}

	var req reqdto.AssignVoucherRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	created, err := h.voucherCommands.Assign(c.Request.Context(), voucherID, req.CustomerID)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, resdto.AssignVoucherResponse{Created: created})
}

// @Summary Revoke voucher assignment
// @Description Remove a customer's grant; redemption history is preserved
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Voucher ID"
// @Param customer_id path string true "Customer ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /vouchers/{id}/assignments/{customer_id} [delete]
func (h *VoucherHandler) Revoke(c *gin.Context) {
	voucherID, err := parseVoucherID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid voucher ID format",
		})
		return
	}

	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid customer ID format",
		})
		return
	}

	if err := h.voucherCommands.Revoke(c.Request.Context(), voucherID, customerID); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Pause voucher
// @Description Suspend an active voucher without losing its window
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Voucher ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /vouchers/{id}/pause [post]
func (h *VoucherHandler) Pause(c *gin.Context) {
	h.transition(c, h.voucherCommands.Pause)
}

// @Summary Resume voucher
// @Description Bring a paused voucher back into service
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Voucher ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /vouchers/{id}/resume [post]
func (h *VoucherHandler) Resume(c *gin.Context) {
	h.transition(c, h.voucherCommands.Resume)
}

// @Summary Activate scheduled vouchers
// @Description Sweep SCHEDULED vouchers whose start date has arrived
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.LifecycleSweepResponse
// @Router /vouchers/lifecycle/activate [post]
func (h *VoucherHandler) ActivateScheduled(c *gin.Context) {
	n, err := h.voucherCommands.ActivateScheduled(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.LifecycleSweepResponse{Updated: n})
}

// @Summary Expire overdue vouchers
// @Description Sweep ACTIVE vouchers whose end date has passed
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.LifecycleSweepResponse
// @Router /vouchers/lifecycle/expire [post]
func (h *VoucherHandler) ExpireOverdue(c *gin.Context) {
	n, err := h.voucherCommands.ExpireOverdue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.LifecycleSweepResponse{Updated: n})
}

func (h *VoucherHandler) transition(c *gin.Context, op func(ctx context.Context, voucherID int64) error) {
	voucherID, err := parseVoucherID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid voucher ID format",
		})
		return
	}

	if err := op(c.Request.Context(), voucherID); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseVoucherID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func (h *VoucherHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrVoucherNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Voucher not found",
		})
	case errors.Is(err, commands.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Invalid status transition",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
