// Package config loads the layered runtime configuration: struct defaults
// first, then an optional YAML file, then ACORDE_* environment variables on
// top.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order; the first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/acorde/config.yaml",
}

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "ACORDE_CONFIG"

const envPrefix = "ACORDE_"

type Config struct {
	Server ServerConfig `koanf:"server"`
	Neo4j  Neo4jConfig  `koanf:"neo4j"`
	Ollama OllamaConfig `koanf:"ollama"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr" validate:"required"`
	ReadHeaderLimit time.Duration `koanf:"read_header_limit" validate:"gt=0"`
	ShutdownGrace   time.Duration `koanf:"shutdown_grace" validate:"gt=0"`
}

type Neo4jConfig struct {
	URI      string `koanf:"uri" validate:"required"`
	User     string `koanf:"user" validate:"required"`
	Password string `koanf:"password"`
	Database string `koanf:"database" validate:"required"`
}

type OllamaConfig struct {
	Host       string        `koanf:"host"`
	ChatModel  string        `koanf:"chat_model"`
	EmbedModel string        `koanf:"embed_model"`
	Timeout    time.Duration `koanf:"timeout" validate:"gt=0"`
}

// defaultConfig mirrors a working local setup; production overrides via
// file or environment.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadHeaderLimit: 15 * time.Second,
			ShutdownGrace:   10 * time.Second,
		},
		Neo4j: Neo4jConfig{
			URI:      "neo4j://localhost:7687",
			User:     "neo4j",
			Password: "testtest",
			Database: "tracks",
		},
		Ollama: OllamaConfig{
			Host:       "http://localhost:11434",
			ChatModel:  "qwen2.5:0.5b",
			EmbedModel: "nomic-embed-text",
			Timeout:    30 * time.Second,
		},
	}
}

// Load assembles the configuration from all layers and validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load file %s: %w", path, err)
		}
	}

	// ACORDE_NEO4J_URI -> neo4j.uri, ACORDE_OLLAMA_CHAT_MODEL -> ollama.chat_model
	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: validation: %w", err)
	}
	return cfg, nil
}

// envTransform maps ACORDE_SECTION_SOME_KEY to section.some_key. The first
// underscore separates the section; the rest stays snake_case.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.Replace(s, "_", ".", 1)
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
