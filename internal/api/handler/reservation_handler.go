package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/travelink/booking-api/internal/api/metrics"
	"github.com/travelink/booking-api/internal/core/ports"
)

type ReservationHandler struct {
	reservationService ports.ReservationService
	authService        ports.AuthService
}

func NewReservationHandler(reservationService ports.ReservationService, authService ports.AuthService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService, authService: authService}
}

// Create records a new booking for the authenticated user.
//
// @Summary      Create a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReservationRequest  true  "Reservation details"
// @Success      201   {object}  reservationResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "check_in must be a valid date (YYYY-MM-DD)")
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "check_out must be a valid date (YYYY-MM-DD)")
	}
	if checkOut.Before(checkIn) {
		return echo.NewHTTPError(http.StatusBadRequest, "check_out must be on or after check_in")
	}

	reservation, err := h.reservationService.Create(c.Request().Context(), ports.CreateReservationInput{
		UserID:   userID,
		HotelID:  req.HotelID,
		RoomType: req.RoomType,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	if err != nil {
		return err
	}

	metrics.ReservationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, reservationResponse{Message: "reservation created", Reservation: reservation})
}

// List returns the authenticated user's reservations.
//
// @Summary      List own reservations
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Reservation
// @Failure      401  {object}  map[string]string
// @Router       /reservations [get]
func (h *ReservationHandler) List(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	reservations, err := h.reservationService.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservations)
}

// ListAll returns every reservation. Admin only (enforced by RBAC middleware).
//
// @Summary      List all reservations
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Reservation
// @Failure      403  {object}  map[string]string
// @Router       /admin/reservations [get]
func (h *ReservationHandler) ListAll(c echo.Context) error {
	reservations, err := h.reservationService.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservations)
}

// Cancel marks one of the user's reservations as cancelled.
//
// @Summary      Cancel a reservation
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Reservation ID"
// @Success      200  {object}  reservationResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	reservation, err := h.reservationService.Cancel(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}

	metrics.ReservationsTotal.WithLabelValues("cancelled").Inc()
	return c.JSON(http.StatusOK, reservationResponse{Message: "reservation cancelled", Reservation: reservation})
}

// RelayToPartner forwards a multi-room reservation to the external
// reservation service and propagates its response.
//
// @Summary      Create a reservation at the partner service
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      partnerReservationRequest  true  "Partner reservation details"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /reservations/partner [post]
func (h *ReservationHandler) RelayToPartner(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req partnerReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start_date must be a valid date (YYYY-MM-DD)")
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "end_date must be a valid date (YYYY-MM-DD)")
	}
	if !end.After(start) {
		return echo.NewHTTPError(http.StatusBadRequest, "end_date must be after start_date")
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	result, err := h.reservationService.RelayToPartner(c.Request().Context(), ports.PartnerReservationInput{
		HotelID:   req.HotelID,
		RoomIDs:   req.RoomIDs,
		Start:     start,
		End:       end,
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
	})
	if err != nil {
		return err
	}

	if result.StatusCode >= 200 && result.StatusCode < 300 {
		metrics.ReservationsTotal.WithLabelValues("relayed").Inc()
		return c.JSON(http.StatusCreated, map[string]any{
			"success": true,
			"message": "reservation created at partner service",
			"reserva": result.Body,
		})
	}

	return c.JSON(result.StatusCode, map[string]any{
		"success": false,
		"message": "partner service rejected the reservation",
		"error":   result.Body,
	})
}
