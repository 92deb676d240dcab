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

type (
	Config struct {
		Env                       string
		Debug                     bool
		TestMode                  bool
		AppName                   string
		Build                     string
		SecretKey                 string
		FrontendBaseURL           string
		DefaultFromEmail          string
		RollbarToken              string
		SendgridAPIKey            string
		PasswordResetTimeoutDelta time.Duration

		Server ServerConfig
		Store  StoreConfig
		Table  TableConfig
	}

	ServerConfig struct {
		Address                   string
		DebugAddress              string
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
		DisableReqLogs            bool
	}

	// StoreConfig configures the in-memory mock stores.
	StoreConfig struct {
		Latency time.Duration // artificial delay applied to every store call
	}

	TableConfig struct {
		PageSizes       []int
		DefaultPageSize int
	}
)

func newViper() *viper.Viper {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "EduManage")
	v.SetDefault("build", "develop")
	v.SetDefault("secretKey", "k9#v2-pq0d!z7w)mx4$e8r+u1n(b6ja&t3g@s5h=c%ly")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "EduManage <noreply@localhost>")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridAPIKey", "")
	v.SetDefault("passwordResetTimeoutDelta", 3*24*time.Hour)

	v.SetDefault("serverAddress", ":8000")
	v.SetDefault("serverDebugAddress", ":4000")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)
	v.SetDefault("disableReqLogs", false)

	v.SetDefault("storeLatency", 300*time.Millisecond)

	v.SetDefault("tablePageSizes", "5,10,15")
	v.SetDefault("tableDefaultPageSize", 10)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
		v.SetDefault("storeLatency", time.Duration(0))
	}
	v.Set("env", env)
	v.SetEnvPrefix(env)

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
	return v
}

// NewConfig loads the app configuration from defaults, the optional config/.env.<env> file and the environment.
// Env vars are prefixed with the upper-cased ENV, eg: DEV_STORELATENCY=1s.
func NewConfig() *Config {
	v := newViper()
	return &Config{
		Env:                       v.GetString("env"),
		Debug:                     v.GetBool("debug"),
		TestMode:                  v.GetBool("testMode"),
		AppName:                   v.GetString("appName"),
		Build:                     v.GetString("build"),
		SecretKey:                 v.GetString("secretKey"),
		FrontendBaseURL:           v.GetString("frontendBaseURL"),
		DefaultFromEmail:          v.GetString("defaultFromEmail"),
		RollbarToken:              v.GetString("rollbarToken"),
		SendgridAPIKey:            v.GetString("sendgridAPIKey"),
		PasswordResetTimeoutDelta: v.GetDuration("passwordResetTimeoutDelta"),
		Server: ServerConfig{
			Address:                   v.GetString("serverAddress"),
			DebugAddress:              v.GetString("serverDebugAddress"),
			ShutdownTimeout:           v.GetDuration("serverShutdownTimeout"),
			JWTExpirationDelta:        v.GetDuration("jwtExpirationDelta"),
			JWTRefreshExpirationDelta: v.GetDuration("jwtRefreshExpirationDelta"),
			DisableReqLogs:            v.GetBool("disableReqLogs"),
		},
		Store: StoreConfig{
			Latency: v.GetDuration("storeLatency"),
		},
		Table: TableConfig{
			PageSizes:       parseInts(v.GetString("tablePageSizes")),
			DefaultPageSize: v.GetInt("tableDefaultPageSize"),
		},
	}
}

// NewTestConfig returns a Config suitable for tests: no latency, no external services.
func NewTestConfig() *Config {
	conf := NewConfig()
	conf.Debug = false
	conf.TestMode = true
	conf.Store.Latency = 0
	conf.Server.DisableReqLogs = true
	return conf
}

// DefaultFromAddress parses DefaultFromEmail; the app name is used when it carries no display name.
func (c *Config) DefaultFromAddress() mail.Address {
	addr, err := mail.ParseAddress(c.DefaultFromEmail)
	if err != nil {
		return mail.Address{Name: c.AppName, Address: c.DefaultFromEmail}
	}
	if addr.Name == "" {
		addr.Name = c.AppName
	}
	return *addr
}
