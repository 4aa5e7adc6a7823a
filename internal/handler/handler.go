package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/bhatbazik/Automated-employee-shift/internal/config"
	"github.com/bhatbazik/Automated-employee-shift/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/employees", func(r chi.Router) {
		r.Post("/", h.CreateEmployee)
		r.Get("/", h.GetAllEmployees)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.employeeInfo)
			r.Get("/", h.GetEmployee)
			r.Patch("/", h.UpdateEmployee)
			r.Delete("/", h.DeleteEmployee)
			r.Patch("/seniority", h.UpdateEmployeeSeniority)
			r.Get("/shifts", h.GetEmployeeShifts)
			r.Route("/availability", func(r chi.Router) {
				r.Post("/", h.SubmitAvailability)
				r.Get("/", h.GetAvailability)
			})
		})
	})

	h.Mux.Route("/shift-settings", func(r chi.Router) {
		r.Get("/", h.GetShiftSettings)
		r.Patch("/", h.UpdateShiftSettings)
	})

	h.Mux.Route("/shifts", func(r chi.Router) {
		r.Get("/", h.GetShifts)
		r.Post("/generate", h.GenerateSchedule)
	})

	h.Mux.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.GetAllNotifications)
		r.Patch("/{id}/read", h.MarkNotificationRead)
	})
}
