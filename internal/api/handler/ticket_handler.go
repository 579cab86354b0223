package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/easyjatra/marketplace-api/internal/core/ports"
)

// TicketHandler handles HTTP requests for ticket browsing and listing.
type TicketHandler struct {
	service ports.TicketService
}

func NewTicketHandler(service ports.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

// List handles GET /tickets.
//
// @Summary      List all tickets
// @Tags         tickets
// @Produce      json
// @Success      200  {array}   domain.Ticket
// @Router       /tickets [get]
func (h *TicketHandler) List(c echo.Context) error {
	tickets, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tickets)
}

// Get handles GET /tickets/:id.
//
// @Summary      Get a ticket by id
// @Tags         tickets
// @Produce      json
// @Param        id   path      string  true  "Ticket id (hex)"
// @Success      200  {object}  domain.Ticket
// @Failure      404  {object}  errorResponse
// @Router       /tickets/{id} [get]
func (h *TicketHandler) Get(c echo.Context) error {
	ticket, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ticket)
}

// Create handles POST /tickets (vendor only).
//
// @Summary      List a new ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTicketRequest  true  "Ticket details"
// @Success      201   {object}  insertResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /tickets [post]
func (h *TicketHandler) Create(c echo.Context) error {
	var req createTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.service.Create(c.Request().Context(), ports.CreateTicketInput{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Image:       req.Image,
		VendorID:    req.VendorID,
		VendorEmail: req.VendorEmail,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, insertResponse{InsertedID: id})
}

// Inventory handles GET /my-inventory/:email (vendor only).
//
// @Summary      List a vendor's tickets
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Vendor email"
// @Success      200    {array}   domain.Ticket
// @Failure      403    {object}  errorResponse
// @Router       /my-inventory/{email} [get]
func (h *TicketHandler) Inventory(c echo.Context) error {
	tickets, err := h.service.Inventory(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tickets)
}
