package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/attendance-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	approvalService "github.com/cmlabs-hris/attendance-backend-go/internal/service/approval"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/daystatus"
	dashboardService "github.com/cmlabs-hris/attendance-backend-go/internal/service/employee_dashboard"
	holidayService "github.com/cmlabs-hris/attendance-backend-go/internal/service/holiday"
	leaveService "github.com/cmlabs-hris/attendance-backend-go/internal/service/leave"
	reportService "github.com/cmlabs-hris/attendance-backend-go/internal/service/report"
	"github.com/rickar/cal/v2"
)

type repositories struct {
	attendance attendance.AttendanceRepository
	employee   employee.EmployeeRepository
	holiday    holiday.HolidayRepository
	leave      leave.LeaveRequestRepository
	close      func()
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if cfg.Database.Driver == config.DriverMemory {
		store := memory.NewStore()
		return &repositories{
			attendance: memory.NewAttendanceRepository(store),
			employee:   memory.NewEmployeeRepository(store),
			holiday:    memory.NewHolidayRepository(store),
			leave:      memory.NewLeaveRequestRepository(store),
			close:      func() {},
		}, nil
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := postgresql.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &repositories{
		attendance: postgresql.NewAttendanceRepository(db),
		employee:   postgresql.NewEmployeeRepository(db),
		holiday:    postgresql.NewHolidayRepository(db),
		leave:      postgresql.NewLeaveRequestRepository(db),
		close:      db.Close,
	}, nil
}

func nationalHolidays(cfg *config.Config) []*cal.Holiday {
	out := make([]*cal.Holiday, 0, len(cfg.Holidays.National))
	for _, h := range cfg.Holidays.National {
		out = append(out, holidayService.NationalHoliday(h.Name, h.Month, h.Day))
	}
	return out
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		log.Fatal("Error opening store: ", err)
	}
	defer repos.close()

	location := cfg.Location()

	if cfg.App.SeedDemo {
		employees, okEmp := repos.employee.(fixtures.EmployeeWriter)
		holidays, okHol := repos.holiday.(fixtures.HolidayWriter)
		if !okEmp || !okHol {
			log.Fatal("store does not support seeding")
		}
		if err := fixtures.Seed(ctx, employees, holidays, time.Now().In(location).Year()); err != nil {
			log.Fatal("Error seeding demo data: ", err)
		}
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	holidaySvc := holidayService.NewHolidayService(repos.holiday, nationalHolidays(cfg))
	facts := daystatus.NewLoader(repos.attendance, repos.leave, holidaySvc)
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendance, repos.employee, facts, cfg.AttendancePolicy(), cfg.AutoCloseMinutes())
	approvalSvc := approvalService.NewApprovalService(repos.attendance, location)
	leaveSvc := leaveService.NewLeaveService(repos.leave, repos.employee, cfg.Policy.SickLeaveYearlyQuota, location)
	reportSvc := reportService.NewReportService(repos.employee, facts, location)
	dashboardSvc := dashboardService.NewEmployeeDashboardService(attendanceSvc, leaveSvc, reportSvc, location)

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		AppName:        cfg.App.Name,
		Environment:    cfg.App.Env,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
	}, JWTService, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, location),
		Approval:   appHTTP.NewApprovalHandler(approvalSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Report:     appHTTP.NewReportHandler(reportSvc, location),
		Holiday:    appHTTP.NewHolidayHandler(holidaySvc, location),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
	})

	var scheduler *cron.Scheduler
	if cfg.Cron.AutoCloseEnabled {
		scheduler = cron.NewScheduler(location)
		if err := cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler, cfg.AutoCloseCron()); err != nil {
			log.Fatal("Error registering cron jobs: ", err)
		}
		scheduler.Start()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "driver", cfg.Database.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	if scheduler != nil {
		scheduler.Stop()
	}
}
