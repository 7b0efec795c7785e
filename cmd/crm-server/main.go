// crm-server serves the CRM API and its server-rendered form, detail, and
// table pages, backed by sqlite.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/goliatone/go-dynamicform/crm"
	"github.com/goliatone/go-dynamicform/crm/httpapi"
)

type Config struct {
	HttpAddr string `envDefault:":8080"`

	DBPath string `envDefault:"crm.db"`

	// TokenSecret signs session and password reset tokens.
	TokenSecret     string        `envDefault:"dev-secret-change-me"`
	SessionLifetime time.Duration `envDefault:"1h"`

	// AdminEmail/AdminPassword seed the initial account when set.
	AdminEmail    string
	AdminPassword string
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	conf, err := env.ParseAsWithOptions[Config](env.Options{Prefix: "CRM_", UseFieldNameByDefault: true})
	if err != nil {
		panic(err)
	}

	db, err := crm.OpenDB(conf.DBPath)
	if err != nil {
		slog.Error("opening database", "path", conf.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	users := crm.NewUserService()
	if conf.AdminEmail != "" && conf.AdminPassword != "" {
		_, err := users.Create(crm.UserInput{
			Name:     "Administrator",
			Email:    conf.AdminEmail,
			Role:     "admin",
			Status:   "active",
			Password: conf.AdminPassword,
		})
		if err != nil {
			slog.Error("seeding admin account", "error", err)
			os.Exit(1)
		}
		slog.Info("seeded admin account", "email", conf.AdminEmail)
	}

	auth := crm.NewAuthService(users, crm.NewTokenIssuer([]byte(conf.TokenSecret)), conf.SessionLifetime)
	customers := crm.NewCustomerStore(db)

	server := httpapi.New(auth, users, customers, httpapi.WithLogger(slog.Default()))

	slog.Info("starting server", "addr", conf.HttpAddr)
	if err := http.ListenAndServe(conf.HttpAddr, server); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
