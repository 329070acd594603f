package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	AppName        string
	Environment    string
	LogLevel       slog.Level
	AllowedOrigins []string
}

type Handlers struct {
	Attendance AttendanceHandler
	Approval   ApprovalHandler
	Leave      LeaveHandler
	Report     ReportHandler
	Holiday    HolidayHandler
	Dashboard  DashboardHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Environment != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", opts.AppName),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Environment),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

		r.Route("/attendance", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceCreate))
				r.Post("/punch-in", h.Attendance.PunchIn)
				r.Post("/punch-out", h.Attendance.PunchOut)
				r.Post("/reached-home", h.Attendance.ReachedHome)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceViewOwn))
				r.Get("/today", h.Attendance.GetToday)
				r.Get("/my", h.Attendance.GetMyAttendance)
				r.Get("/calendar", h.Attendance.GetCalendar)
				r.Get("/late-summary", h.Attendance.GetLateSummary)
				r.Get("/{id}", h.Attendance.Get)
			})

			// Approvers
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireApprover)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/", h.Attendance.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceApprove))
					r.Get("/work-mode/pending", h.Approval.ListPendingWorkMode)
					r.Post("/{id}/work-mode/approve", h.Approval.ApproveWorkMode)
					r.Post("/{id}/work-mode/reject", h.Approval.RejectWorkMode)
					r.Get("/late", h.Approval.ListLate)
					r.Post("/{id}/late/approve", h.Approval.ApproveLate)
					r.Post("/{id}/late/reject", h.Approval.RejectLate)
				})
			})
		})

		r.Route("/leave", func(r chi.Router) {
			r.Route("/requests", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", h.Leave.CreateRequest)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/my", h.Leave.GetMyRequests)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/{id}", h.Leave.GetRequest)

				// Approvers
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/", h.Leave.ListRequests)
					r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Post("/{id}/approve", h.Leave.ApproveRequest)
					r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Post("/{id}/reject", h.Leave.RejectRequest)
					r.With(middleware.RequirePermission(user.PermissionLeavePayType)).Put("/{id}/pay-type", h.Leave.SetPayType)
				})
			})
			r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/balance", h.Leave.GetMyBalance)
		})

		r.Route("/reports", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionReportsViewOwn)).Get("/me", h.Report.GetMyReport)

			// Approvers
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireApprover)
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/company", h.Report.GetCompanyReport)
				r.Get("/company/export", h.Report.ExportCompanyReport)
				r.Get("/daily", h.Report.GetDailyReport)
				r.Get("/employees/{id}", h.Report.GetEmployeeReport)
			})
		})

		r.Get("/holidays", h.Holiday.List)

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermissionReportsViewOwn))
			r.Get("/me", h.Dashboard.GetMyDashboard)
			r.Get("/me/work-hours", h.Dashboard.GetMyWorkHours)
		})
	})
	return r
}
