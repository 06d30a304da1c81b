package core

import (
	"fmt"
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Conf holds the app-wide configuration. It is set once by LoadConfig at startup.
var Conf *Config

type (
	Config struct {
		Debug    bool
		TestMode bool
		Env      string
		AppName  string
		Build    string

		SecretKey      string
		FromEmail      string
		SendgridApiKey string
		RollbarToken   string
		ArtifactsDir   string
		GraceMinutes   int // default grace period for new assessments
		MaxAccessHours int // submission window duration per student

		Server   ServerConfig
		Database DatabaseConfig
		Redis    RedisConfig
		Client   ClientConfig
	}

	ServerConfig struct {
		Addr               string
		Host               string
		JWTExpirationDelta time.Duration
		ShutdownTimeout    time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          int
		DisableTLS    bool
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
	}

	// ClientConfig configures the student-facing CLI.
	ClientConfig struct {
		APIBaseURL  string
		SessionFile string
	}
)

func (c DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: c.AppName, Address: c.FromEmail}
}

// LoadConfig reads configuration from the environment (with an optional
// config/.env.<env> file) into Conf.
func LoadConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Amali")
	v.SetDefault("build", "dev")
	v.SetDefault("secretKey", "kq2x-vml)vnb$+83=dz&uoxh7(h!t)#*c5(#yg1h^$cegm9emy")
	v.SetDefault("fromEmail", "noreply@localhost")
	v.SetDefault("artifactsDir", filepath.Join(os.TempDir(), "amali-artifacts"))
	v.SetDefault("graceMinutes", 15)
	v.SetDefault("maxAccessHours", 4)
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("jwtExpirationDelta", 4*time.Hour)
	v.SetDefault("shutdownTimeout", 20*time.Second)
	v.SetDefault("dbEngine", "postgres")
	v.SetDefault("dbName", "amali")
	v.SetDefault("dbHost", "localhost")
	v.SetDefault("dbPort", 5432)
	v.SetDefault("dbDisableTLS", true)
	v.SetDefault("apiBaseURL", "http://localhost:8000")
	v.SetDefault("sessionFile", filepath.Join(userHomeDir(), ".amali", "session.json"))

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
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

	Conf = &Config{
		Debug:          v.GetBool("debug"),
		TestMode:       v.GetBool("testMode"),
		Env:            env,
		AppName:        v.GetString("appName"),
		Build:          v.GetString("build"),
		SecretKey:      v.GetString("secretKey"),
		FromEmail:      v.GetString("fromEmail"),
		SendgridApiKey: v.GetString("sendgridApiKey"),
		RollbarToken:   v.GetString("rollbarToken"),
		ArtifactsDir:   v.GetString("artifactsDir"),
		GraceMinutes:   v.GetInt("graceMinutes"),
		MaxAccessHours: v.GetInt("maxAccessHours"),
		Server: ServerConfig{
			Addr:               v.GetString("serverAddr"),
			Host:               v.GetString("serverHost"),
			JWTExpirationDelta: v.GetDuration("jwtExpirationDelta"),
			ShutdownTimeout:    v.GetDuration("shutdownTimeout"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("dbEngine"),
			Name:          v.GetString("dbName"),
			User:          v.GetString("dbUser"),
			Password:      v.GetString("dbPassword"),
			AdminUser:     v.GetString("dbAdminUser"),
			AdminPassword: v.GetString("dbAdminPassword"),
			Host:          v.GetString("dbHost"),
			Port:          v.GetInt("dbPort"),
			DisableTLS:    v.GetBool("dbDisableTLS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redisAddr"),
			Password: v.GetString("redisPassword"),
			DB:       v.GetInt("redisDB"),
		},
		Client: ClientConfig{
			APIBaseURL:  v.GetString("apiBaseURL"),
			SessionFile: v.GetString("sessionFile"),
		},
	}
	return Conf
}

func userHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
