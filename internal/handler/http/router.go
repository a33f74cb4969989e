package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	LogLevel       slog.Level
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	salaryHandler SalaryHandler,
	holidayHandler HolidayHandler,
	attendanceHandler AttendanceHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/salaries", func(r chi.Router) {
				r.Get("/", salaryHandler.ListSalaries)
				r.Post("/generate", salaryHandler.GenerateForPeriod)
				r.Get("/remittance", salaryHandler.GetRemittance)

				r.Route("/employees/{employeeID}", func(r chi.Router) {
					r.Post("/generate", salaryHandler.GenerateForEmployee)
					r.Post("/preview", salaryHandler.Preview)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", salaryHandler.GetSalary)
					r.Patch("/", salaryHandler.UpdateSalary)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", holidayHandler.ListHolidays)
				r.Post("/sync", holidayHandler.SyncYear)
			})

			r.Route("/attendance/employees/{employeeID}/punches", func(r chi.Router) {
				r.Get("/", attendanceHandler.ListPunches)
				r.Post("/", attendanceHandler.ImportPunches)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	return r
}
