package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/rishusinha26/portfolio-backend/config"
	"github.com/rishusinha26/portfolio-backend/pkg/helpers"
	"github.com/rishusinha26/portfolio-backend/pkg/identity"
)

// devtoken prints a bearer token for IDENTITY_PROVIDER=jwt deployments.
// The user record is created on the first request made with the token;
// promote it afterwards with cmd/setadmin.
//
//	go run ./cmd/devtoken -email owner@example.com owner
func main() {
	email := flag.String("email", "", "email claim")
	name := flag.String("name", "", "display name claim")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: devtoken [-email addr] [-name name] [-ttl 1h] <subject>")
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-devtoken", cfg.Env, cfg.LogLevel)
	// stdout carries only the token
	logger.SetOutput(os.Stderr)

	tok, exp, err := issue(cfg, identity.Claims{Subject: flag.Arg(0), Email: *email, Name: *name}, *ttl)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	logger.WithField("expires_at", exp.UTC().Format(time.RFC3339)).Info("token issued")
	fmt.Println(tok)
}

var errNotJWT = errors.New("devtoken needs IDENTITY_PROVIDER=jwt and IDENTITY_JWT_SECRET")

func issue(cfg *config.Config, claims identity.Claims, ttl time.Duration) (string, time.Time, error) {
	if cfg.IdentityProvider != "jwt" || cfg.IdentityJWTSecret == "" {
		return "", time.Time{}, errNotJWT
	}
	return identity.NewJWTVerifier(cfg.IdentityJWTSecret, ttl).Issue(claims)
}
