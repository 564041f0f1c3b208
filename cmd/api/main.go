package main

import (
	"fmt"
	"net/http"

	"github.com/utamahr/claims-backend-go/internal/config"
	appHTTP "github.com/utamahr/claims-backend-go/internal/handler/http"
	"github.com/utamahr/claims-backend-go/internal/pkg/database"
	"github.com/utamahr/claims-backend-go/internal/pkg/jwt"
	"github.com/utamahr/claims-backend-go/internal/repository/postgresql"
	claimService "github.com/utamahr/claims-backend-go/internal/service/claim"
	employeeService "github.com/utamahr/claims-backend-go/internal/service/employee"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	claimRepo := postgresql.NewClaimRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	claimSvc := claimService.NewClaimService(db, claimRepo, policyRepo, employeeRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)

	claimHandler := appHTTP.NewClaimHandler(claimSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(cfg, JWTService, claimHandler, employeeHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
