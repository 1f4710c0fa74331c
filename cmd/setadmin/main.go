package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/rishusinha26/portfolio-backend/config"
	"github.com/rishusinha26/portfolio-backend/internal/application"
	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
	"github.com/rishusinha26/portfolio-backend/internal/infrastructure/store"
	"github.com/rishusinha26/portfolio-backend/pkg/helpers"
)

// setadmin promotes (or demotes) a user who has signed in at least once.
//
//	go run ./cmd/setadmin -role admin owner@example.com
func main() {
	role := flag.String("role", string(entity.RoleAdmin), "role to assign: admin or user")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: setadmin [-role admin|user] <email-or-subject-id>")
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-setadmin", cfg.Env, cfg.LogLevel)

	ctx := context.Background()
	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer st.Close()

	svc := application.NewIdentityService(st.Users, logger)
	u, err := svc.SetRole(ctx, flag.Arg(0), entity.Role(*role))
	if err != nil {
		logger.Fatalf("%s", application.MessageOf(err, "failed to set role"))
	}
	fmt.Printf("user %s (%s) now has role %s\n", u.Email, u.SubjectID, u.Role)
}
