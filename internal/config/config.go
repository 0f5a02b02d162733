package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"mail-ticket-poller/internal/classifier"
	"mail-ticket-poller/internal/models"
	"mail-ticket-poller/internal/ticketstore"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	DefaultPort         = 993
	DefaultMailbox      = "INBOX"
	DefaultPollInterval = 60 * time.Second
)

// Default returns the configuration used when neither file nor environment set a value
func Default() *models.Config {
	return &models.Config{
		Email: models.EmailConfig{
			Port:         DefaultPort,
			MailBox:      DefaultMailbox,
			PollInterval: DefaultPollInterval,
		},
		Mongo: models.MongoConfig{
			Database:   ticketstore.DefaultDatabase,
			Collection: ticketstore.DefaultCollection,
		},
		Keywords: append([]string(nil), classifier.DefaultKeywords...),
		Log: models.LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the optional YAML file at filepath, then .env, then the process environment.
// Later sources win. A missing file is not an error; an IMAP_PORT that is not an integer,
// or an empty IMAP server or Mongo URI, is.
func Load(filepath string) (*models.Config, error) {
	config := Default()

	configFile, err := os.ReadFile(filepath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(configFile, config); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filepath, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}

	if config.Email.Imap == "" {
		return nil, errors.New("IMAP server is not configured (email.imap or IMAP_SERVER)")
	}
	if config.Mongo.URI == "" {
		return nil, errors.New("mongo URI is not configured (mongo.uri or MONGO_URI)")
	}

	if config.Email.PollInterval <= 0 {
		config.Email.PollInterval = DefaultPollInterval
	}
	if config.Email.MailBox == "" {
		config.Email.MailBox = DefaultMailbox
	}

	return config, nil
}

func applyEnv(config *models.Config) error {
	setString(&config.Email.Login, "EMAIL")
	setString(&config.Email.Password, "PASSWORD")
	setString(&config.Email.Imap, "IMAP_SERVER")
	setString(&config.Email.MailBox, "IMAP_MAILBOX")
	setString(&config.Mongo.URI, "MONGO_URI")
	setString(&config.Mongo.Database, "MONGO_DATABASE")
	setString(&config.Mongo.Collection, "MONGO_COLLECTION")
	setString(&config.Log.Level, "LOG_LEVEL")
	setString(&config.Log.Format, "LOG_FORMAT")
	setString(&config.Metrics.Addr, "METRICS_ADDR")

	if v, ok := os.LookupEnv("IMAP_PORT"); ok {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("IMAP_PORT must be an integer: %w", err)
		}
		config.Email.Port = port
	}

	if v, ok := os.LookupEnv("POLL_INTERVAL"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("POLL_INTERVAL: %w", err)
		}
		config.Email.PollInterval = d
	}

	if v, ok := os.LookupEnv("KEYWORDS"); ok && strings.TrimSpace(v) != "" {
		config.Keywords = strings.Split(v, ",")
	}

	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
