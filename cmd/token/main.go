// Command token prints a bearer token for an owner, for local use against the API.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/finsight/internal/config"
	"github.com/MrJamesThe3rd/finsight/internal/http/auth"
)

func main() {
	_ = godotenv.Load()

	ownerFlag := flag.String("owner", "", "owner id (defaults to TUI_OWNER_ID)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.JWTSecret == "" {
		slog.Error("AUTH_JWT_SECRET is required")
		os.Exit(1)
	}

	owner := cfg.TUI.Owner
	if *ownerFlag != "" {
		owner, err = uuid.Parse(*ownerFlag)
		if err != nil {
			slog.Error("invalid owner id", "owner", *ownerFlag, "error", err)
			os.Exit(1)
		}
	}

	if owner == uuid.Nil {
		slog.Error("an owner id is required: pass -owner or set TUI_OWNER_ID")
		os.Exit(1)
	}

	token, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL).Generate(owner)
	if err != nil {
		slog.Error("failed to sign token", "error", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
