package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Batch     BatchConfig     `yaml:"batch"`
	Converter ConverterConfig `yaml:"converter"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// BatchConfig holds settings for line-by-line file conversion.
type BatchConfig struct {
	Workers      int `yaml:"workers"        env:"BATCH_WORKERS"        env-default:"0"`
	MaxLineBytes int `yaml:"max_line_bytes" env:"BATCH_MAX_LINE_BYTES" env-default:"1048576"`
}

// ConverterConfig holds conversion defaults.
type ConverterConfig struct {
	OutputSystem    string `yaml:"output_system"     env:"CONVERTER_OUTPUT_SYSTEM"     env-default:"arabic"`
	MaxRequestBytes int64  `yaml:"max_request_bytes" env:"CONVERTER_MAX_REQUEST_BYTES" env-default:"65536"`
	// LexiconPath optionally names a file of alternate spellings.
	LexiconPath string `yaml:"lexicon_path" env:"CONVERTER_LEXICON_PATH"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
