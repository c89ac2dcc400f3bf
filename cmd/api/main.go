package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/payroll-engine-go/internal/config"
	appHTTP "github.com/cmlabs-hris/payroll-engine-go/internal/handler/http"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-engine-go/internal/repository/postgresql"
	payrollService "github.com/cmlabs-hris/payroll-engine-go/internal/service/payroll"
	periodService "github.com/cmlabs-hris/payroll-engine-go/internal/service/period"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "payroll-engine"),
	)

	employeeRepo := postgresql.NewEmployeeRepository(db)
	periodRepo := postgresql.NewPayPeriodRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	deductionRepo := postgresql.NewDeductionRepository(db)
	benefitRepo := postgresql.NewBenefitRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	hoursConfig := payrollService.DefaultHoursConfig()
	hoursConfig.GraceMinutes = cfg.Payroll.GracePeriodMinutes
	hoursConfig.SessionCap = cfg.Payroll.SessionCapHours

	hoursCalculator := payrollService.NewHoursCalculator(hoursConfig)
	aggregator := payrollService.NewAttendanceAggregator(attendanceRepo, hoursCalculator, cfg.Payroll.StandardDayHours)
	leavePolicy := payrollService.NewLeavePaymentPolicy()
	calculator := payrollService.NewEmployeeCalculator(
		employeeRepo,
		periodRepo,
		leaveRepo,
		deductionRepo,
		benefitRepo,
		aggregator,
		leavePolicy,
		cfg.Payroll.StandardDayHours,
	)
	payrollSvc := payrollService.NewPayrollService(
		db,
		payrollRepo,
		employeeRepo,
		periodRepo,
		calculator,
		logger,
		cfg.Payroll.BatchConcurrency,
	)
	periodSvc := periodService.NewPeriodService(periodRepo, cfg.Payroll.StandardDayHours)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	periodHandler := appHTTP.NewPeriodHandler(periodSvc)

	router := appHTTP.NewRouter(JWTService, payrollHandler, periodHandler, cfg.App.Env)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
