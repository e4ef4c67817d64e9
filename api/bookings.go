package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/airline-booking/internal/domain"
	"github.com/Domenick1991/airline-booking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const invalidBookingBody = "flightId is required and must be a uuid"

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FlightID      string `json:"flightId" binding:"required,uuid"`
	PassengerName string `json:"passengerName"`
}

type bookingResponse struct {
	ID            uuid.UUID `json:"id"`
	FlightID      uuid.UUID `json:"flightId"`
	PassengerName string    `json:"passengerName"`
	Status        string    `json:"status"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.POST("/:id/confirm", h.confirm)
	router.POST("/:id/cancel", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidBookingBody})
		return
	}

	flightID, err := uuid.Parse(req.FlightID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidBookingBody})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		FlightID:      flightID,
		PassengerName: req.PassengerName,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.Header("Location", "/api/bookings/"+created.ID.String())
	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) get(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	found, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(found))
}

func (h *BookingHandler) confirm(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	updated, err := h.service.ConfirmBooking(c.Request.Context(), id)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(updated))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	updated, err := h.service.CancelBooking(c.Request.Context(), id)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(updated))
}

// bookingID answers 404 itself when the path segment is not a uuid, the same
// as an unknown booking.
func bookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return uuid.Nil, false
	}
	return id, true
}

func writeBookingError(c *gin.Context, err error) {
	var transitionErr *booking.TransitionError
	switch {
	case errors.Is(err, booking.ErrFlightNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "flight not found"})
	case errors.Is(err, booking.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, gin.H{"error": transitionErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:            b.ID,
		FlightID:      b.FlightID,
		PassengerName: b.PassengerName,
		Status:        string(b.Status),
	}
}
