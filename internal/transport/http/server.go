package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"mindwell/backend/internal/domain"
	"mindwell/backend/internal/service/scheduling"
	"mindwell/backend/internal/store"
)

// schedulingService is the slice of the lifecycle manager the transport
// depends on.
type schedulingService interface {
	ResolveSlots(ctx context.Context, providerID string, date time.Time) ([]domain.AvailabilityWindow, error)
	Book(ctx context.Context, in scheduling.BookInput) (domain.Appointment, error)
	ConfirmPayment(ctx context.Context, id uuid.UUID) (domain.Appointment, error)
	Complete(ctx context.Context, id uuid.UUID) (domain.Appointment, error)
	Cancel(ctx context.Context, id uuid.UUID) (domain.Appointment, error)
	Reschedule(ctx context.Context, id uuid.UUID, newDate time.Time, newStart, newEnd domain.TimeOfDay) (domain.Appointment, error)
	ListProviderAppointments(ctx context.Context, providerID string, filter store.AppointmentFilter) ([]domain.Appointment, error)
	ListPatientAppointments(ctx context.Context, patientID string, filter store.AppointmentFilter) ([]domain.Appointment, error)

	ListAvailability(ctx context.Context, providerID string) ([]domain.AvailabilityWindow, error)
	AddAvailability(ctx context.Context, in scheduling.AvailabilityInput) (domain.AvailabilityWindow, error)
	RemoveAvailability(ctx context.Context, providerID string, windowID uuid.UUID) error
	ToggleAvailability(ctx context.Context, providerID string, windowID uuid.UUID, enabled bool) (domain.AvailabilityWindow, error)
	ListBlocks(ctx context.Context, providerID string, dateFrom, dateTo time.Time) ([]domain.ScheduleBlock, error)
	AddBlock(ctx context.Context, in scheduling.BlockInput) (domain.ScheduleBlock, error)
	RemoveBlock(ctx context.Context, providerID string, blockID uuid.UUID) error
}

type Server struct {
	svc schedulingService
	log *slog.Logger
}

func NewServer(svc schedulingService, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		svc: svc,
		log: log.With(slog.String("component", "http.scheduling")),
	}
}

type RouterConfig struct {
	RequestTimeout time.Duration
	AllowedOrigins []string
}

func (s *Server) Router(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/appointments", func(r chi.Router) {
			r.Post("/", s.handleBook)
			r.Post("/{appointmentID}/confirm-payment", s.handleConfirmPayment)
			r.Post("/{appointmentID}/complete", s.handleComplete)
			r.Post("/{appointmentID}/cancel", s.handleCancel)
			r.Post("/{appointmentID}/reschedule", s.handleReschedule)
		})

		r.Route("/providers/{providerID}", func(r chi.Router) {
			r.Get("/slots", s.handleResolveSlots)
			r.Get("/appointments", s.handleListProviderAppointments)

			r.Get("/availability", s.handleListAvailability)
			r.Post("/availability", s.handleAddAvailability)
			r.Delete("/availability/{windowID}", s.handleRemoveAvailability)
			r.Post("/availability/{windowID}/toggle", s.handleToggleAvailability)

			r.Get("/blocks", s.handleListBlocks)
			r.Post("/blocks", s.handleAddBlock)
			r.Delete("/blocks/{blockID}", s.handleRemoveBlock)
		})

		r.Get("/patients/{patientID}/appointments", s.handleListPatientAppointments)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
