package payment

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"juanride/internal/paymongo"
	"juanride/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	poller  *Poller
	gateway *paymongo.Client
	baseURL string
}

func NewHandler(service *Service, poller *Poller, gateway *paymongo.Client, appBaseURL string) *Handler {
	return &Handler{service: service, poller: poller, gateway: gateway, baseURL: appBaseURL}
}

// RegisterRoutes registers payment routes under the protected group. The
// /payments/gateway subtree proxies the payment provider and keeps its
// native {data}/{error} envelope.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/payments")
	{
		group.POST("/bookings/:id/intent", h.CreateIntent)
		group.GET("/bookings/:id", h.GetForBooking)
		group.POST("/intents/:intent_id/check", h.CheckNow)

		gw := group.Group("/gateway")
		{
			gw.POST("/customers", h.CreateCustomer)
			gw.GET("/customers/:id", h.RetrieveCustomer)
			gw.PUT("/customers/:id", h.UpdateCustomer)
			gw.GET("/customers", h.ListCustomers)

			gw.GET("/payment_intents", h.ListIntents)
			gw.GET("/payment_intents/:id", h.RetrieveIntent)
			gw.POST("/payment_intents/:id/cancel", h.CancelIntent)
			gw.POST("/payment_intents/:id/attach", h.AttachIntent)

			gw.POST("/payment_methods", h.CreateMethod)
			gw.GET("/payment_methods/:id", h.RetrieveMethod)
			gw.PUT("/payment_methods/:id", h.UpdateMethod)
			gw.GET("/payment_methods", h.ListMethods)

			gw.POST("/sources/gcash", h.CreateGCashSource)

			gw.POST("/refunds", h.CreateRefund)
			gw.GET("/refunds/:id", h.RetrieveRefund)
			gw.GET("/refunds", h.ListRefunds)

			gw.GET("/payments/:id", h.RetrievePayment)
			gw.GET("/payments", h.ListPayments)
		}
	}
}

func (h *Handler) CreateIntent(c *gin.Context) {
	userID := c.GetInt64("user_id")

	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	p, doc, err := h.service.CreateIntentForBooking(c.Request.Context(), bookingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrAlreadyPaid):
			response.Error(c, http.StatusConflict, "ALREADY_PAID", "Booking already has a successful payment")
		default:
			h.gatewayError(c, err)
		}
		return
	}

	// the watch outlives the request, so it cannot inherit the request context
	h.poller.Watch(context.Background(), p.IntentID)

	response.Success(c, http.StatusCreated, gin.H{"payment": p, "intent": doc})
}

func (h *Handler) GetForBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	p, err := h.service.GetForBooking(c.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "No payment for this booking")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment": p})
}

func (h *Handler) CheckNow(c *gin.Context) {
	intentID := c.Param("intent_id")

	state, err := h.poller.CheckNow(c.Request.Context(), intentID)
	if err != nil {
		if errors.Is(err, ErrNotWatched) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Payment intent is not being tracked")
			return
		}
		h.gatewayError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"state": state})
}

// --- gateway passthrough ---

func (h *Handler) proxy(c *gin.Context, doc paymongo.Document, err error) {
	if err != nil {
		h.gatewayError(c, err)
		return
	}
	response.Gateway(c, http.StatusOK, doc)
}

func (h *Handler) gatewayError(c *gin.Context, err error) {
	var apiErr *paymongo.APIError
	switch {
	case errors.Is(err, paymongo.ErrNotConfigured):
		response.GatewayError(c, http.StatusServiceUnavailable, "Payment gateway is not configured")
	case errors.As(err, &apiErr):
		response.GatewayError(c, apiErr.StatusCode, apiErr.Detail)
	default:
		response.GatewayError(c, http.StatusBadGateway, "Payment gateway request failed")
	}
}

func (h *Handler) CreateCustomer(c *gin.Context) {
	var p paymongo.CreateCustomerParams
	if err := c.ShouldBindJSON(&p); err != nil {
		response.GatewayError(c, http.StatusBadRequest, err.Error())
		return
	}
	doc, err := h.gateway.CreateCustomer(c.Request.Context(), p)
	h.proxy(c, doc, err)
}

func (h *Handler) RetrieveCustomer(c *gin.Context) {
	doc, err := h.gateway.RetrieveCustomer(c.Request.Context(), c.Param("id"))
	h.proxy(c, doc, err)
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	var p paymongo.CreateCustomerParams
	if err := c.ShouldBindJSON(&p); err != nil {
		response.GatewayError(c, http.StatusBadRequest, err.Error())
		return
	}
	doc, err := h.gateway.UpdateCustomer(c.Request.Context(), c.Param("id"), p)
	h.proxy(c, doc, err)
}

func (h *Handler) ListCustomers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	doc, err := h.gateway.ListCustomers(c.Request.Context(), limit)
	h.proxy(c, doc, err)
}

func (h *Handler) ListIntents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	doc, err := h.gateway.ListPaymentIntents(c.Request.Context(), limit)
	h.proxy(c, doc, err)
}

func (h *Handler) RetrieveIntent(c *gin.Context) {
	doc, err := h.gateway.RetrievePaymentIntent(c.Request.Context(), c.Param("id"))
	h.proxy(c, doc, err)
}

func (h *Handler) CancelIntent(c *gin.Context) {
	doc, err := h.gateway.CancelPaymentIntent(c.Request.Context(), c.Param("id"))
	h.proxy(c, doc, err)
}

func (h *Handler) AttachIntent(c *gin.Context) {
	var p paymongo.AttachIntentParams
	if err := c.ShouldBindJSON(&p); err != nil {
		response.GatewayError(c, http.StatusBadRequest, err.Error())
		return
	}
	doc, err := h.gateway.AttachPaymentIntent(c.Request.Context(), c.Param("id"), p)
	h.proxy(c, doc, err)
}

func (h *Handler) CreateMethod(c *gin.Context) {
	var p paymongo.CreateMethodParams
	if err := c.ShouldBindJSON(&p); err != nil {
		response.GatewayError(c, http.StatusBadRequest, err.Error())
		return
	}
	doc, err := h.gateway.CreatePaymentMethod(c.Request.Context(), p)
	h.proxy(c, doc, err)
}

func (h *Handler) RetrieveMethod(c *gin.Context) {
	doc, err := h.gateway.RetrievePaymentMethod(c.Request.Context(), c.Param("id"))
	h.proxy(c, doc, err)
}

func (h *Handler) UpdateMethod(c *gin.Context) {
	var p paymongo.CreateMethodParams
	if err := c.ShouldBindJSON(&p); err != nil {
		response.GatewayError(c, http.StatusBadRequest, err.Error())
		return
	}
	doc, err := h.gateway.UpdatePaymentMethod(c.Request.Context(), c.Param("id"), p)
	h.proxy(c, doc, err)
}

func (h *Handler) ListMethods(c *gin.Context) {
	doc, err := h.gateway.ListPaymentMethods(c.Request.Context(), c.Query("customer_id"))
	h.proxy(c, doc, err)
}

func (h *Handler) CreateGCashSource(c *gin.Context) {
	var req struct {
		Amount int64 `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.GatewayError(c, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.gateway.CreateGCashSource(c.Request.Context(), req.Amount,
		h.baseURL+"/payment/success", h.baseURL+"/payment/failed")
	h.proxy(c, doc, err)
}

func (h *Handler) CreateRefund(c *gin.Context) {
	var p paymongo.CreateRefundParams
	if err := c.ShouldBindJSON(&p); err != nil {
		response.GatewayError(c, http.StatusBadRequest, err.Error())
		return
	}
	doc, err := h.gateway.CreateRefund(c.Request.Context(), p)
	h.proxy(c, doc, err)
}

func (h *Handler) RetrieveRefund(c *gin.Context) {
	doc, err := h.gateway.RetrieveRefund(c.Request.Context(), c.Param("id"))
	h.proxy(c, doc, err)
}

func (h *Handler) ListRefunds(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	doc, err := h.gateway.ListRefunds(c.Request.Context(), limit)
	h.proxy(c, doc, err)
}

func (h *Handler) RetrievePayment(c *gin.Context) {
	doc, err := h.gateway.RetrievePayment(c.Request.Context(), c.Param("id"))
	h.proxy(c, doc, err)
}

func (h *Handler) ListPayments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	doc, err := h.gateway.ListPayments(c.Request.Context(), limit)
	h.proxy(c, doc, err)
}
