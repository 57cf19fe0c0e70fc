package config

import (
	"github.com/kbukum/injector/logger"
)

// Cycle check modes accepted in CycleCheck.
const (
	CycleCheckFull      = "full"
	CycleCheckFirstEdge = "first_edge"
)

// DefaultInjectTag is the struct tag key that marks injectable fields.
const DefaultInjectTag = "inject"

// Config holds the settings of a container.
//
// Example injector.yml:
//
//	cycle_check: full
//	inject_tag: inject
//	tracing: true
//	logging:
//	  level: debug
//	  format: json
type Config struct {
	// CycleCheck selects how much of the dependency graph is explored when a
	// binding is registered.
	CycleCheck string `yaml:"cycle_check" mapstructure:"cycle_check" validate:"required,oneof=full first_edge"`
	// InjectTag is the struct tag key that marks fields for injection.
	InjectTag string `yaml:"inject_tag" mapstructure:"inject_tag" validate:"required,max=64,excludesall=:"`
	// InjectAll disables the tag marker so every field is injected.
	InjectAll bool `yaml:"inject_all" mapstructure:"inject_all"`
	// Tracing enables spans and metrics through the global OpenTelemetry providers.
	Tracing bool          `yaml:"tracing" mapstructure:"tracing"`
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults applies default values to unset fields.
func (c *Config) ApplyDefaults() {
	if c.CycleCheck == "" {
		c.CycleCheck = CycleCheckFull
	}
	if c.InjectTag == "" {
		c.InjectTag = DefaultInjectTag
	}
	c.Logging.ApplyDefaults()
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validateStruct(c)
}
