// Command seed provisions user accounts from a JSON file against the
// configured database. Existing accounts are updated in place; new accounts
// without a password get a generated one, logged once.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hourbank/overtime/internal/overtime/app"
	"github.com/hourbank/overtime/internal/overtime/domain"
	"github.com/hourbank/overtime/internal/overtime/service"
	"github.com/hourbank/overtime/internal/overtime/store/drivers/sqlite"
	"github.com/hourbank/overtime/pkg/cryptox"
	"github.com/hourbank/overtime/pkg/slogx"
)

type seedAccount struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
}

func main() {
	file := flag.String("file", "seed.json", "path to the JSON seed file")
	flag.Parse()

	if err := run(*file); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run(file string) error {
	cfg := app.LoadConfig()
	cryptox.SetPepperPath(cfg.PepperFile)

	logger := slogx.New(slogx.Config{
		Service: "overtime-seed",
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
	ctx := slogx.WithContext(context.Background(), logger)

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var accounts []seedAccount
	if err := json.Unmarshal(data, &accounts); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	db, err := sqlite.NewStore(fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.ApplyMigrations(); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	users := &service.UserService{Store: db}
	for _, acct := range accounts {
		user, created, err := users.Provision(ctx, service.ProvisionInput{
			Username: acct.Username,
			Name:     acct.Name,
			Role:     domain.Role(acct.Role),
			Password: acct.Password,
		})
		if err != nil {
			return fmt.Errorf("provision %q: %w", acct.Username, err)
		}
		action := "updated"
		if created {
			action = "created"
		}
		logger.Info("account provisioned", "username", user.Username, "role", user.Role, "action", action)
	}

	logger.Info("seed complete", "accounts", len(accounts))
	return nil
}
