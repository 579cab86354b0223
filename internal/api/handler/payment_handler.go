package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/easyjatra/marketplace-api/internal/core/ports"
)

// PaymentHandler handles checkout-session creation, payment confirmation,
// and order listings.
type PaymentHandler struct {
	checkout ports.CheckoutService
	orders   ports.OrderQueryService
}

func NewPaymentHandler(checkout ports.CheckoutService, orders ports.OrderQueryService) *PaymentHandler {
	return &PaymentHandler{checkout: checkout, orders: orders}
}

// CreateCheckoutSession handles POST /create-checkout-session.
//
// @Summary      Create a payment-gateway checkout session
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      createCheckoutSessionRequest  true  "Cart description"
// @Success      200   {object}  checkoutSessionResponse
// @Failure      400   {object}  errorResponse
// @Router       /create-checkout-session [post]
func (h *PaymentHandler) CreateCheckoutSession(c echo.Context) error {
	var req createCheckoutSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	url, err := h.checkout.CreateSession(c.Request().Context(), ports.CreateSessionInput{
		TicketID:      req.TicketID,
		Name:          req.Name,
		Image:         req.Image,
		Description:   req.Description,
		Price:         req.Price,
		Quantity:      req.Quantity,
		CustomerEmail: req.Customer.Email,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, checkoutSessionResponse{URL: url})
}

// PaymentSuccess handles POST /payment-success.
//
// Confirming the same completed session twice returns the same order id
// both times; an incomplete session or one whose ticket vanished is
// rejected with 422 instead of failing unpredictably.
//
// @Summary      Confirm a checkout session and materialize the order
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      paymentSuccessRequest  true  "Session id"
// @Success      200   {object}  paymentSuccessResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /payment-success [post]
func (h *PaymentHandler) PaymentSuccess(c echo.Context) error {
	var req paymentSuccessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.checkout.Confirm(c.Request().Context(), req.SessionID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, paymentSuccessResponse{
		TransactionID: result.TransactionID,
		OrderID:       result.OrderID,
	})
}

// MyOrders handles GET /my-orders — orders for the token's email.
//
// @Summary      List the caller's orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Order
// @Failure      401  {object}  errorResponse
// @Router       /my-orders [get]
func (h *PaymentHandler) MyOrders(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	orders, err := h.orders.OrdersForCustomer(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// VendorOrders handles GET /vendor-orders/:email and GET /manage-orders/:email.
//
// @Summary      List orders against a vendor's tickets
// @Tags         orders
// @Produce      json
// @Param        email  path      string  true  "Vendor email"
// @Success      200    {array}   domain.Order
// @Router       /vendor-orders/{email} [get]
func (h *PaymentHandler) VendorOrders(c echo.Context) error {
	orders, err := h.orders.OrdersForVendor(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}
