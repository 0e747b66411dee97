package handler

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/healing-forest/reservation/backend/internal/config"
	"github.com/healing-forest/reservation/backend/internal/domain"
	"github.com/healing-forest/reservation/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	location    *time.Location

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		location:    loc,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	admin := h.RequiredRole([]domain.Role{domain.RoleAdmin})

	// 인증
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 아래 API 는 로그인해야 호출할 수 있다
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/", h.UpdateMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(admin)
			r.Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
				r.Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/reservations", func(r chi.Router) {
			r.Post("/", h.CreateReservation)
			r.Get("/", h.GetReservations)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.reservation)
				r.Get("/", h.GetReservation)
				r.Patch("/", h.UpdateReservation)
				r.With(admin).Delete("/", h.DeleteReservation)
				r.Get("/implementation-plan", h.GetImplementationPlan)

				r.Route("/programs", func(r chi.Router) {
					r.Get("/", h.GetReservationPrograms)
					r.Post("/", h.CreateProgram)
					r.Post("/check-conflicts", h.CheckProgramConflicts)
					r.Route("/{programID}", func(r chi.Router) {
						r.Use(h.program)
						r.Get("/", h.GetProgram)
						r.Patch("/", h.UpdateProgram)
						r.Delete("/", h.DeleteProgram)
					})
				})

				r.Route("/expenses", func(r chi.Router) {
					r.Get("/", h.GetReservationExpenses)
					r.Post("/", h.CreateExpense)
					r.Route("/{expenseID}", func(r chi.Router) {
						r.Use(h.expense)
						r.Patch("/", h.UpdateExpense)
						r.Delete("/", h.DeleteExpense)
					})
				})
			})
		})

		r.Get("/programs", h.GetProgramsOnDate)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/implementation-plans", h.GetPeriodReport)
		})

		for _, kind := range []domain.StaffKind{domain.StaffInstructor, domain.StaffAssistant, domain.StaffHelper} {
			r.Route("/"+string(kind), func(r chi.Router) {
				r.Use(h.withStaffKind(kind))
				r.Get("/", h.GetAllStaff)
				r.With(admin).Post("/", h.CreateStaff)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(h.staff)
					r.Get("/", h.GetStaff)
					r.With(admin).Patch("/", h.UpdateStaff)
					r.With(admin).Delete("/", h.DeleteStaff)
				})
			})
		}

		r.Route("/locations", func(r chi.Router) {
			r.Get("/", h.GetAllLocations)
			r.With(admin).Post("/", h.CreateLocation)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.locationInfo)
				r.Get("/", h.GetLocation)
				r.With(admin).Patch("/", h.UpdateLocation)
				r.With(admin).Delete("/", h.DeleteLocation)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.GetAllCategories)
			r.With(admin).Post("/", h.CreateCategory)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.category)
				r.Get("/", h.GetCategory)
				r.With(admin).Patch("/", h.UpdateCategory)
				r.With(admin).Delete("/", h.DeleteCategory)
			})
		})
	})
}
