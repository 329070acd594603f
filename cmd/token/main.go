// Command token mints access tokens for the attendance API. Sign-in lives in
// the HR portal; this is for local use and integration testing.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
)

func main() {
	employeeID := flag.String("employee", fixtures.EmployeeID, "employee id placed in the employee_id claim")
	role := flag.String("role", string(user.RoleEmployee), "role claim: admin, manager or employee")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(*employeeID, user.Role(*role))
	if err != nil {
		log.Fatal("Error generating token: ", err)
	}

	fmt.Println(token)
	fmt.Printf("# expires %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
}
