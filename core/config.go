package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env              string
	Debug            bool
	TestMode         bool
	AppName          string
	Build            string
	RollbarToken     string
	SendgridAPIKey   string
	DefaultFromEmail mail.Address

	Server struct {
		Host               string
		Address            string
		DebugAddress       string
		SessionLifetime    time.Duration
		ShutdownTimeout    time.Duration
		DisableRequestLogs bool
	}

	Standards struct {
		CatalogFile string // empty: embedded catalog
	}

	Seed struct {
		Demo              bool
		DemoPassword      string
		AdminUsername     string
		AdminEmail        string
		AdminPasswordHash string
	}
}

// NewConfig reads the configuration from the environment (and `config/.env.<env>` if it exists).
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "EduTrack")
	v.SetDefault("build", "dev")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridAPIKey", "")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugAddress", ":4000")
	v.SetDefault("server.sessionLifetime", 24*time.Hour)
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.disableRequestLogs", false)
	v.SetDefault("standards.catalogFile", "")
	v.SetDefault("seed.demo", true)
	v.SetDefault("seed.demoPassword", "password")
	v.SetDefault("seed.adminUsername", "admin")
	v.SetDefault("seed.adminEmail", "admin@school.edu")
	v.SetDefault("seed.adminPasswordHash", "")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	case "PROD":
		// no error details in responses, no demo accounts
		v.SetDefault("debug", false)
		v.SetDefault("seed.demo", false)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:            env,
		Debug:          v.GetBool("debug"),
		TestMode:       v.GetBool("testMode"),
		AppName:        v.GetString("appName"),
		Build:          v.GetString("build"),
		RollbarToken:   v.GetString("rollbarToken"),
		SendgridAPIKey: v.GetString("sendgridAPIKey"),
		DefaultFromEmail: mail.Address{
			Name:    v.GetString("appName"),
			Address: v.GetString("defaultFromEmail"),
		},
	}

	conf.Server.Host = v.GetString("server.host")
	conf.Server.Address = v.GetString("server.address")
	conf.Server.DebugAddress = v.GetString("server.debugAddress")
	conf.Server.SessionLifetime = v.GetDuration("server.sessionLifetime")
	conf.Server.ShutdownTimeout = v.GetDuration("server.shutdownTimeout")
	conf.Server.DisableRequestLogs = v.GetBool("server.disableRequestLogs")

	conf.Standards.CatalogFile = v.GetString("standards.catalogFile")

	conf.Seed.Demo = v.GetBool("seed.demo")
	conf.Seed.DemoPassword = v.GetString("seed.demoPassword")
	conf.Seed.AdminUsername = v.GetString("seed.adminUsername")
	conf.Seed.AdminEmail = v.GetString("seed.adminEmail")
	conf.Seed.AdminPasswordHash = v.GetString("seed.adminPasswordHash")

	return conf
}
