package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"mindwell/backend/internal/domain"
	"mindwell/backend/internal/service/scheduling"
)

func (s *Server) handleListAvailability(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("op", "ListAvailability"))
	providerID := chi.URLParam(r, "providerID")

	windows, err := s.svc.ListAvailability(r.Context(), providerID)
	if err != nil {
		s.writeServiceError(w, log.With(slog.String("provider_id", providerID)), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"availability": toWindowsJSON(windows)})
}

type addAvailabilityRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (s *Server) handleAddAvailability(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("op", "AddAvailability"))
	providerID := chi.URLParam(r, "providerID")

	var req addAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_json"), slog.String("provider_id", providerID))
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "request body must be valid JSON")
		return
	}

	start, err := domain.ParseTimeOfDay(req.StartTime)
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_start_time"), slog.String("provider_id", providerID))
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "start_time must be HH:MM")
		return
	}
	end, err := domain.ParseTimeOfDay(req.EndTime)
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_end_time"), slog.String("provider_id", providerID))
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "end_time must be HH:MM")
		return
	}

	window, err := s.svc.AddAvailability(r.Context(), scheduling.AvailabilityInput{
		ProviderID: providerID,
		DayOfWeek:  req.DayOfWeek,
		StartTime:  start,
		EndTime:    end,
	})
	if err != nil {
		s.writeServiceError(w, log.With(slog.String("provider_id", providerID)), err)
		return
	}

	log.Info(
		"availability added",
		slog.String("window_id", window.ID.String()),
		slog.String("provider_id", window.ProviderID),
		slog.Int("day_of_week", window.DayOfWeek),
	)
	writeJSON(w, http.StatusCreated, toWindowJSON(window))
}

func (s *Server) handleRemoveAvailability(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("op", "RemoveAvailability"))
	providerID := chi.URLParam(r, "providerID")

	windowID, err := uuid.Parse(chi.URLParam(r, "windowID"))
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "invalid_uuid"), slog.String("provider_id", providerID))
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "window id must be a UUID")
		return
	}

	if err := s.svc.RemoveAvailability(r.Context(), providerID, windowID); err != nil {
		s.writeServiceError(w, log.With(slog.String("window_id", windowID.String())), err)
		return
	}

	log.Info("availability removed", slog.String("window_id", windowID.String()), slog.String("provider_id", providerID))
	w.WriteHeader(http.StatusNoContent)
}

type toggleAvailabilityRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) handleToggleAvailability(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("op", "ToggleAvailability"))
	providerID := chi.URLParam(r, "providerID")

	windowID, err := uuid.Parse(chi.URLParam(r, "windowID"))
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "invalid_uuid"), slog.String("provider_id", providerID))
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "window id must be a UUID")
		return
	}

	var req toggleAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_json"), slog.String("provider_id", providerID))
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "request body must be valid JSON")
		return
	}

	window, err := s.svc.ToggleAvailability(r.Context(), providerID, windowID, req.Enabled)
	if err != nil {
		s.writeServiceError(w, log.With(slog.String("window_id", windowID.String())), err)
		return
	}

	log.Info(
		"availability toggled",
		slog.String("window_id", window.ID.String()),
		slog.Bool("enabled", window.IsAvailable),
	)
	writeJSON(w, http.StatusOK, toWindowJSON(window))
}

func (s *Server) handleListBlocks(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("op", "ListBlocks"))
	providerID := chi.URLParam(r, "providerID")

	q := r.URL.Query()
	from, err := time.Parse(dateLayout, q.Get("date_from"))
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_date_from"), slog.String("provider_id", providerID))
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "date_from must be YYYY-MM-DD")
		return
	}
	to, err := time.Parse(dateLayout, q.Get("date_to"))
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_date_to"), slog.String("provider_id", providerID))
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "date_to must be YYYY-MM-DD")
		return
	}

	blocks, err := s.svc.ListBlocks(r.Context(), providerID, from, to)
	if err != nil {
		s.writeServiceError(w, log.With(slog.String("provider_id", providerID)), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blocks": toBlocksJSON(blocks)})
}

type addBlockRequest struct {
	BlockDate string `json:"block_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

func (s *Server) handleAddBlock(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("op", "AddBlock"))
	providerID := chi.URLParam(r, "providerID")

	var req addBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_json"), slog.String("provider_id", providerID))
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "request body must be valid JSON")
		return
	}

	date, start, end, ok := parseSlotFields(w, log, req.BlockDate, req.StartTime, req.EndTime)
	if !ok {
		return
	}

	block, err := s.svc.AddBlock(r.Context(), scheduling.BlockInput{
		ProviderID: providerID,
		BlockDate:  date,
		StartTime:  start,
		EndTime:    end,
		Reason:     req.Reason,
	})
	if err != nil {
		s.writeServiceError(w, log.With(slog.String("provider_id", providerID)), err)
		return
	}

	log.Info(
		"block added",
		slog.String("block_id", block.ID.String()),
		slog.String("provider_id", block.ProviderID),
		slog.String("block_date", block.BlockDate.Format(dateLayout)),
	)
	writeJSON(w, http.StatusCreated, toBlockJSON(block))
}

func (s *Server) handleRemoveBlock(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("op", "RemoveBlock"))
	providerID := chi.URLParam(r, "providerID")

	blockID, err := uuid.Parse(chi.URLParam(r, "blockID"))
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "invalid_uuid"), slog.String("provider_id", providerID))
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "block id must be a UUID")
		return
	}

	if err := s.svc.RemoveBlock(r.Context(), providerID, blockID); err != nil {
		s.writeServiceError(w, log.With(slog.String("block_id", blockID.String())), err)
		return
	}

	log.Info("block removed", slog.String("block_id", blockID.String()), slog.String("provider_id", providerID))
	w.WriteHeader(http.StatusNoContent)
}
