package models

import "time"

// Config represents the application configuration
type Config struct {
	Email    EmailConfig   `yaml:"email"`
	Mongo    MongoConfig   `yaml:"mongo"`
	Keywords []string      `yaml:"keywords"`
	Log      LogConfig     `yaml:"log"`
	Metrics  MetricsConfig `yaml:"metrics"`
}

// EmailConfig represents IMAP email configuration
type EmailConfig struct {
	Imap         string        `yaml:"imap"`
	Port         int           `yaml:"port"`
	Login        string        `yaml:"login"`
	Password     string        `yaml:"password"`
	PollInterval time.Duration `yaml:"pollInterval"`
	MailBox      string        `yaml:"mailbox"`
}

// MongoConfig represents the ticket store connection
type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig enables the Prometheus listener when Addr is set
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}
