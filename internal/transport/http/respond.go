package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"mindwell/backend/internal/domain"
	"mindwell/backend/internal/service/scheduling"
	"mindwell/backend/internal/store"
)

const (
	codeSlotUnavailable   = "slot_unavailable"
	codeInvalidTransition = "invalid_transition"
	codeNotFound          = "not_found"
	codeInvalidRequest    = "invalid_request"
	codeInternal          = "internal"
)

const dateLayout = "2006-01-02"

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// writeServiceError translates the engine's error taxonomy into HTTP. The
// caller always receives one of the documented codes; storage details never
// leak.
func (s *Server) writeServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	var invalid *scheduling.InvalidTransitionError
	var vErr *scheduling.ValidationError

	switch {
	case errors.Is(err, scheduling.ErrSlotUnavailable):
		log.Info("slot unavailable")
		writeError(w, http.StatusConflict, codeSlotUnavailable, "That slot is no longer available. Pick a different one.")
	case errors.As(err, &invalid):
		log.Info("invalid transition", slog.Any("err", err))
		writeError(w, http.StatusConflict, codeInvalidTransition, invalid.Error())
	case errors.Is(err, store.ErrNotFound):
		log.Info("not found")
		writeError(w, http.StatusNotFound, codeNotFound, "resource not found")
	case errors.As(err, &vErr):
		log.Warn("invalid request", slog.Any("err", err))
		writeError(w, http.StatusBadRequest, codeInvalidRequest, vErr.Error())
	default:
		log.Error("request failed", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

type appointmentJSON struct {
	ID                 string    `json:"id"`
	ProviderID         string    `json:"provider_id"`
	PatientID          string    `json:"patient_id"`
	Date               string    `json:"date"`
	StartTime          string    `json:"start_time"`
	EndTime            string    `json:"end_time"`
	Status             string    `json:"status"`
	PaymentStatus      string    `json:"payment_status"`
	PaymentMethod      string    `json:"payment_method,omitempty"`
	PaymentAmountCents int64     `json:"payment_amount_cents"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func toAppointmentJSON(a domain.Appointment) appointmentJSON {
	return appointmentJSON{
		ID:                 a.ID.String(),
		ProviderID:         a.ProviderID,
		PatientID:          a.PatientID,
		Date:               a.Date.Format(dateLayout),
		StartTime:          a.StartTime.String(),
		EndTime:            a.EndTime.String(),
		Status:             string(a.Status),
		PaymentStatus:      string(a.PaymentStatus),
		PaymentMethod:      a.PaymentMethod,
		PaymentAmountCents: a.PaymentAmountCents,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func toAppointmentsJSON(appts []domain.Appointment) []appointmentJSON {
	out := make([]appointmentJSON, 0, len(appts))
	for _, a := range appts {
		out = append(out, toAppointmentJSON(a))
	}
	return out
}

type windowJSON struct {
	ID          string `json:"id"`
	ProviderID  string `json:"provider_id"`
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

func toWindowJSON(w domain.AvailabilityWindow) windowJSON {
	return windowJSON{
		ID:          w.ID.String(),
		ProviderID:  w.ProviderID,
		DayOfWeek:   w.DayOfWeek,
		StartTime:   w.StartTime.String(),
		EndTime:     w.EndTime.String(),
		IsAvailable: w.IsAvailable,
	}
}

func toWindowsJSON(windows []domain.AvailabilityWindow) []windowJSON {
	out := make([]windowJSON, 0, len(windows))
	for _, w := range windows {
		out = append(out, toWindowJSON(w))
	}
	return out
}

type blockJSON struct {
	ID         string `json:"id"`
	ProviderID string `json:"provider_id"`
	BlockDate  string `json:"block_date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Reason     string `json:"reason,omitempty"`
}

func toBlockJSON(b domain.ScheduleBlock) blockJSON {
	return blockJSON{
		ID:         b.ID.String(),
		ProviderID: b.ProviderID,
		BlockDate:  b.BlockDate.Format(dateLayout),
		StartTime:  b.StartTime.String(),
		EndTime:    b.EndTime.String(),
		Reason:     b.Reason,
	}
}

func toBlocksJSON(blocks []domain.ScheduleBlock) []blockJSON {
	out := make([]blockJSON, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, toBlockJSON(b))
	}
	return out
}
