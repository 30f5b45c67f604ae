package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ciba/models"
	"ciba/services/clinic"
	"ciba/utils"
)

// ClinicHandler serves the clinic booking endpoints.
type ClinicHandler struct {
	Service clinic.ClinicBookingService
	Logger  *zap.Logger
}

// NewClinicHandler constructs a ClinicHandler.
func NewClinicHandler(svc clinic.ClinicBookingService, logger *zap.Logger) *ClinicHandler {
	return &ClinicHandler{Service: svc, Logger: logger}
}

// GetAvailabilityHandler returns the booked slot strings for one date.
func (h *ClinicHandler) GetAvailabilityHandler(c *gin.Context) {
	date := c.Param("date")

	slots, err := h.Service.GetBookedSlots(c.Request.Context(), date)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":        date,
		"bookedSlots": slots,
		"totalSlots":  h.Service.TotalSlots(),
	})
}

// DatesAvailabilityHandler returns the availability map for a list of
// candidate dates in one request.
func (h *ClinicHandler) DatesAvailabilityHandler(c *gin.Context) {
	var input struct {
		Dates []string `json:"dates"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	availability, err := h.Service.GetDatesAvailability(c.Request.Context(), input.Dates)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"availability": availability})
}

// CreateBookingHandler validates and persists a booking submission. The
// response is sent as soon as the booking is durable; confirmation mail and
// the calendar event follow in the background.
func (h *ClinicHandler) CreateBookingHandler(c *gin.Context) {
	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booking, err := h.Service.CreateBooking(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      booking.ID,
		"booking": booking,
		"message": "Booking confirmed. A confirmation email is on its way.",
	})
}

func (h *ClinicHandler) respondError(c *gin.Context, err error) {
	switch clinic.ErrorCode(err) {
	case clinic.CodeValidation:
		utils.JSONError(c, http.StatusBadRequest, "validation failed", err.Error())
	case clinic.CodeSlotTaken:
		utils.JSONError(c, http.StatusConflict, "slot already booked", err.Error())
	case clinic.CodeUnavailable:
		utils.JSONError(c, http.StatusServiceUnavailable, "booking store unavailable", err.Error())
	default:
		h.Logger.Error("unexpected clinic error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}
