package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/easyjatra/marketplace-api/internal/core/ports"
)

// VendorHandler handles the vendor-onboarding request lifecycle.
type VendorHandler struct {
	service ports.VendorService
}

func NewVendorHandler(service ports.VendorService) *VendorHandler {
	return &VendorHandler{service: service}
}

// BecomeVendor handles POST /become-vendor (authenticated).
//
// @Summary      Request vendor status
// @Tags         vendors
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  insertResponse
// @Failure      401  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /become-vendor [post]
func (h *VendorHandler) BecomeVendor(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	id, err := h.service.Request(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, insertResponse{InsertedID: id})
}

// ListRequests handles GET /vendor-request (admin only).
//
// @Summary      List pending vendor requests
// @Tags         vendors
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.VendorRequest
// @Failure      403  {object}  errorResponse
// @Router       /vendor-request [get]
func (h *VendorHandler) ListRequests(c echo.Context) error {
	requests, err := h.service.ListRequests(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}
