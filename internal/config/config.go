package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/containeroo/resolver"
	"gopkg.in/yaml.v3"
)

// Default values for notification and delivery settings
const (
	defaultBlockerOnly          bool          = true
	defaultShowDescription      bool          = true
	defaultDescriptionMaxLength int           = 140
	defaultChatTimeout          time.Duration = 10 * time.Second
	defaultSkipTLSVerify        bool          = false

	minDescriptionMaxLength = 4 // room for one rune plus "..."
)

// LoadConfig loads the configuration from the given path and resolves secret references.
func LoadConfig(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if err := resolveSecrets(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// resolveSecrets replaces references like "env:NAME" or "file:/path" with their values.
func resolveSecrets(cfg *Config) error {
	if cfg.Chat.WebhookURL == "" {
		return nil
	}
	v, err := resolver.ResolveVariable(cfg.Chat.WebhookURL)
	if err != nil {
		return fmt.Errorf("resolve chat.webhookURL: %w", err)
	}
	cfg.Chat.WebhookURL = strings.TrimSpace(v)
	return nil
}

// ValidateConfig checks the configuration and fills in defaults.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if n := cfg.Notify.DescriptionMaxLength; n != 0 && n < minDescriptionMaxLength {
		errs = append(errs, fmt.Sprintf("notify.descriptionMaxLength must be >= %d (got %d)", minDescriptionMaxLength, n))
	}

	if cfg.Chat.Timeout < 0 {
		errs = append(errs, "chat.timeout must be > 0")
	}

	if raw := cfg.Chat.WebhookURL; raw != "" {
		u, err := url.Parse(raw)
		switch {
		case err != nil:
			errs = append(errs, fmt.Sprintf("chat.webhookURL is invalid: %v", err))
		case u.Scheme != "http" && u.Scheme != "https":
			errs = append(errs, fmt.Sprintf("chat.webhookURL must use http or https (got %q)", u.Scheme))
		case u.Host == "":
			errs = append(errs, "chat.webhookURL must include a host")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	setDefaults(cfg)

	return nil
}

// setBoolDefault assigns val to *dst only if dst is unset.
func setBoolDefault(dst **bool, val bool) {
	if *dst == nil {
		v := val
		*dst = &v
	}
}

// setDefaults fills in missing fields with default values.
func setDefaults(cfg *Config) {
	setBoolDefault(&cfg.Notify.BlockerOnly, defaultBlockerOnly)
	setBoolDefault(&cfg.Notify.ShowDescription, defaultShowDescription)
	if cfg.Notify.DescriptionMaxLength == 0 {
		cfg.Notify.DescriptionMaxLength = defaultDescriptionMaxLength
	}

	if cfg.Chat.Timeout == 0 {
		cfg.Chat.Timeout = defaultChatTimeout
	}
	setBoolDefault(&cfg.Chat.SkipTLSVerify, defaultSkipTLSVerify)
}
