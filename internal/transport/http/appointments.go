package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"mindwell/backend/internal/domain"
	"mindwell/backend/internal/service/scheduling"
	"mindwell/backend/internal/store"
)

type bookRequest struct {
	ProviderID    string `json:"provider_id"`
	PatientID     string `json:"patient_id"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	AmountCents   int64  `json:"amount_cents"`
	PaymentMethod string `json:"payment_method"`
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("op", "Book"))

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_json"))
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "request body must be valid JSON")
		return
	}

	date, start, end, ok := parseSlotFields(w, log, req.Date, req.StartTime, req.EndTime)
	if !ok {
		return
	}

	appt, err := s.svc.Book(r.Context(), scheduling.BookInput{
		ProviderID:    req.ProviderID,
		PatientID:     req.PatientID,
		Date:          date,
		StartTime:     start,
		EndTime:       end,
		AmountCents:   req.AmountCents,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		s.writeServiceError(w, log.With(slog.String("provider_id", req.ProviderID)), err)
		return
	}

	log.Info(
		"appointment booked",
		slog.String("appointment_id", appt.ID.String()),
		slog.String("provider_id", appt.ProviderID),
		slog.String("date", appt.Date.Format(dateLayout)),
		slog.String("start_time", appt.StartTime.String()),
	)
	writeJSON(w, http.StatusCreated, toAppointmentJSON(appt))
}

func (s *Server) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, "ConfirmPayment", s.svc.ConfirmPayment)
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, "Complete", s.svc.Complete)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, "Cancel", s.svc.Cancel)
}

func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request, op string, fn func(ctx context.Context, id uuid.UUID) (domain.Appointment, error)) {
	log := s.log.With(slog.String("op", op))

	id, err := uuid.Parse(chi.URLParam(r, "appointmentID"))
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "invalid_uuid"))
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "appointment id must be a UUID")
		return
	}

	appt, err := fn(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, log.With(slog.String("appointment_id", id.String())), err)
		return
	}

	log.Info(
		"appointment transitioned",
		slog.String("appointment_id", appt.ID.String()),
		slog.String("status", string(appt.Status)),
	)
	writeJSON(w, http.StatusOK, toAppointmentJSON(appt))
}

type rescheduleRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (s *Server) handleReschedule(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("op", "Reschedule"))

	id, err := uuid.Parse(chi.URLParam(r, "appointmentID"))
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "invalid_uuid"))
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "appointment id must be a UUID")
		return
	}

	var req rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_json"))
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "request body must be valid JSON")
		return
	}

	date, start, end, ok := parseSlotFields(w, log, req.Date, req.StartTime, req.EndTime)
	if !ok {
		return
	}

	appt, err := s.svc.Reschedule(r.Context(), id, date, start, end)
	if err != nil {
		s.writeServiceError(w, log.With(slog.String("appointment_id", id.String())), err)
		return
	}

	log.Info(
		"appointment rescheduled",
		slog.String("appointment_id", appt.ID.String()),
		slog.String("date", appt.Date.Format(dateLayout)),
		slog.String("start_time", appt.StartTime.String()),
	)
	writeJSON(w, http.StatusOK, toAppointmentJSON(appt))
}

func (s *Server) handleResolveSlots(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("op", "ResolveSlots"))

	providerID := chi.URLParam(r, "providerID")
	date, err := time.Parse(dateLayout, r.URL.Query().Get("date"))
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_date"), slog.String("provider_id", providerID))
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "date must be YYYY-MM-DD")
		return
	}

	slots, err := s.svc.ResolveSlots(r.Context(), providerID, date)
	if err != nil {
		s.writeServiceError(w, log.With(slog.String("provider_id", providerID)), err)
		return
	}

	log.Debug(
		"slots resolved",
		slog.String("provider_id", providerID),
		slog.String("date", date.Format(dateLayout)),
		slog.Int("count", len(slots)),
	)
	writeJSON(w, http.StatusOK, map[string]any{"slots": toWindowsJSON(slots)})
}

func (s *Server) handleListProviderAppointments(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("op", "ListProviderAppointments"))
	providerID := chi.URLParam(r, "providerID")

	filter, ok := parseAppointmentFilter(w, log, r)
	if !ok {
		return
	}

	appts, err := s.svc.ListProviderAppointments(r.Context(), providerID, filter)
	if err != nil {
		s.writeServiceError(w, log.With(slog.String("provider_id", providerID)), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"appointments": toAppointmentsJSON(appts)})
}

func (s *Server) handleListPatientAppointments(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("op", "ListPatientAppointments"))
	patientID := chi.URLParam(r, "patientID")

	filter, ok := parseAppointmentFilter(w, log, r)
	if !ok {
		return
	}

	appts, err := s.svc.ListPatientAppointments(r.Context(), patientID, filter)
	if err != nil {
		s.writeServiceError(w, log.With(slog.String("patient_id", patientID)), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"appointments": toAppointmentsJSON(appts)})
}

// parseSlotFields validates the shared date/start/end triple of booking and
// rescheduling payloads. On failure it has already written the response.
func parseSlotFields(w http.ResponseWriter, log *slog.Logger, dateStr, startStr, endStr string) (time.Time, domain.TimeOfDay, domain.TimeOfDay, bool) {
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_date"))
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "date must be YYYY-MM-DD")
		return time.Time{}, 0, 0, false
	}
	start, err := domain.ParseTimeOfDay(startStr)
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_start_time"))
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "start_time must be HH:MM")
		return time.Time{}, 0, 0, false
	}
	end, err := domain.ParseTimeOfDay(endStr)
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_end_time"))
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "end_time must be HH:MM")
		return time.Time{}, 0, 0, false
	}
	return date, start, end, true
}

func parseAppointmentFilter(w http.ResponseWriter, log *slog.Logger, r *http.Request) (store.AppointmentFilter, bool) {
	var filter store.AppointmentFilter
	q := r.URL.Query()

	for _, raw := range q["status"] {
		status, err := domain.ParseAppointmentStatus(raw)
		if err != nil {
			log.Warn("invalid request", slog.String("reason", "bad_status"))
			writeError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())
			return store.AppointmentFilter{}, false
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	if raw := q.Get("date_from"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			log.Warn("invalid request", slog.String("reason", "bad_date_from"))
			writeError(w, http.StatusBadRequest, codeInvalidRequest, "date_from must be YYYY-MM-DD")
			return store.AppointmentFilter{}, false
		}
		filter.DateFrom = &from
	}
	if raw := q.Get("date_to"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			log.Warn("invalid request", slog.String("reason", "bad_date_to"))
			writeError(w, http.StatusBadRequest, codeInvalidRequest, "date_to must be YYYY-MM-DD")
			return store.AppointmentFilter{}, false
		}
		filter.DateTo = &to
	}

	return filter, true
}
