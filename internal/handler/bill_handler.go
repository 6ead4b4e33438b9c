package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartjanseva/janseva-api/internal/service"
)

// BillHandler exposes utility bill lookup and payment.
type BillHandler struct {
	billService *service.BillService
}

// NewBillHandler creates a new bill handler.
func NewBillHandler(billService *service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// PayBillRequest is the bill payment body.
type PayBillRequest struct {
	BillID uint   `json:"bill_id" binding:"required"`
	Method string `json:"method" binding:"required,oneof=upi card cash"`
}

// Due returns unpaid bills for a consumer number.
func (h *BillHandler) Due(c *gin.Context) {
	bills, err := h.billService.DueBills(c.Param("consumer"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

// Pay records a payment against an unpaid bill.
func (h *BillHandler) Pay(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req PayBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	payment, err := h.billService.Pay(service.PayBillInput{
		UserID: userID,
		BillID: req.BillID,
		Method: req.Method,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "payment": payment})
}

// Receipt looks up a payment by its receipt number.
func (h *BillHandler) Receipt(c *gin.Context) {
	payment, err := h.billService.Receipt(c.Param("receipt"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// MyPayments returns the caller's payment history.
func (h *BillHandler) MyPayments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, offset := paginationParams(c)
	payments, err := h.billService.MyPayments(userID, limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
