package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/device"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// EventIngestor runs a device event through the reconciliation pipeline.
type EventIngestor interface {
	Ingest(ctx context.Context, req attendance.DeviceEventRequest) (attendance.DeviceEventResponse, error)
}

type DeviceHandler interface {
	Enroll(w http.ResponseWriter, r *http.Request)
	IngestEvent(w http.ResponseWriter, r *http.Request)
}

type deviceHandlerImpl struct {
	deviceService device.DeviceService
	ingestor      EventIngestor
}

func NewDeviceHandler(deviceService device.DeviceService, ingestor EventIngestor) DeviceHandler {
	return &deviceHandlerImpl{
		deviceService: deviceService,
		ingestor:      ingestor,
	}
}

// Enroll implements DeviceHandler.
func (h *deviceHandlerImpl) Enroll(w http.ResponseWriter, r *http.Request) {
	var req device.EnrollDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.deviceService.Enroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Device enrolled", result)
}

// IngestEvent implements DeviceHandler. The reader is authenticated by
// middleware.DeviceSecretRequired; the body cannot speak for another reader.
func (h *deviceHandlerImpl) IngestEvent(w http.ResponseWriter, r *http.Request) {
	d, ok := middleware.DeviceFromContext(r.Context())
	if !ok {
		response.HandleError(w, device.ErrInvalidDeviceSecret)
		return
	}

	var req attendance.DeviceEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.DeviceMac = d.DeviceMac

	result, err := h.ingestor.Ingest(r.Context(), req)
	if err != nil {
		if attendance.IsRejection(err) {
			writeDeviceRejection(w, err, result)
			return
		}
		message := result.Message
		if message == "" {
			message = attendance.MessageNotRecognized
		}
		response.Error(w, http.StatusInternalServerError, "DEVICE_EVENT_FAILED", message)
		return
	}

	if result.Type == attendance.EventCheckIn {
		response.Created(w, result.Message, result)
		return
	}
	response.SuccessWithMessage(w, result.Message, result)
}

// writeDeviceRejection keeps the HTTP status of the rejection while carrying
// the display text the reader expects.
func writeDeviceRejection(w http.ResponseWriter, err error, result attendance.DeviceEventResponse) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		response.HandleError(w, err)
		return
	}

	status := http.StatusNotFound
	if errors.Is(err, attendance.ErrUnauthorized) {
		status = http.StatusForbidden
	} else if !errors.Is(err, attendance.ErrNotFound) {
		status = http.StatusBadRequest
	}

	response.Error(w, status, "DEVICE_EVENT_REJECTED", result.Message)
}
