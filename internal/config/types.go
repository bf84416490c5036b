package config

import "time"

// Config is the root of the YAML configuration file.
type Config struct {
	Notify Notify `yaml:"notify"`
	Chat   Chat   `yaml:"chat"`
}

// Notify controls which Jira events produce a message and what it shows.
type Notify struct {
	BlockerOnly          *bool `yaml:"blockerOnly,omitempty"`     // default true
	ShowDescription      *bool `yaml:"showDescription,omitempty"` // default true
	DebugOnChannel       bool  `yaml:"debugOnChannel,omitempty"`
	DebugOnLog           bool  `yaml:"debugOnLog,omitempty"`
	DescriptionMaxLength int   `yaml:"descriptionMaxLength,omitempty"` // default 140
}

// Chat configures delivery to a Rocket.Chat incoming webhook.
type Chat struct {
	WebhookURL    string        `yaml:"webhookURL,omitempty"` // empty disables forwarding
	Timeout       time.Duration `yaml:"timeout,omitempty"`
	SkipTLSVerify *bool         `yaml:"skipTLSVerify,omitempty"`
}

// Forwarding reports whether messages are posted to a chat webhook.
func (c Chat) Forwarding() bool {
	return c.WebhookURL != ""
}
