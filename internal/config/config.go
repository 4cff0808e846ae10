package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/themereset/internal/planner"
	"github.com/danieljhkim/themereset/internal/theme"
)

// Config tunes widget classification and row expression synthesis.
//
// Example config.yaml:
//
//	kinds:
//	  LIST_WIDGET_V2: flatChild
//	childTemplateKey: button
//	rowVariable: currentRow
type Config struct {
	// Kinds adds or overrides widget type -> reset strategy entries
	Kinds map[string]string `yaml:"kinds" validate:"dive,keys,required,endkeys,oneof=flat rowTemplate flatChild schema"`

	ChildTemplateKey   string `yaml:"childTemplateKey" validate:"required"`
	SanitizedDataField string `yaml:"sanitizedDataField" validate:"required,excludesall=."`
	RowVariable        string `yaml:"rowVariable" validate:"required,excludesall=."`
	RootSchemaKey      string `yaml:"rootSchemaKey" validate:"required"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Kinds:              map[string]string{},
		ChildTemplateKey:   planner.DefaultChildTemplateKey,
		SanitizedDataField: planner.DefaultSanitizedDataField,
		RowVariable:        planner.DefaultRowVariable,
		RootSchemaKey:      theme.DefaultRootSchemaKey,
	}
}

// Load reads the config file at path. A missing file yields the defaults;
// fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Kinds == nil {
		cfg.Kinds = map[string]string{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration and reports every failing field.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", e.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", e.Field(), e.Param(), e.Value()))
		case "excludesall":
			msgs = append(msgs, fmt.Sprintf("%s must not contain dots", e.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// PlannerOptions converts the configuration into planner options. Configured
// kinds are layered over the built-in kind table.
func (c *Config) PlannerOptions() (planner.Options, error) {
	kinds := theme.DefaultKindTable()
	for widgetType, name := range c.Kinds {
		kind, err := theme.ParseKind(name)
		if err != nil {
			return planner.Options{}, fmt.Errorf("kind for %s: %w", widgetType, err)
		}
		kinds[widgetType] = kind
	}

	return planner.Options{
		Kinds:              kinds,
		ChildTemplateKey:   c.ChildTemplateKey,
		SanitizedDataField: c.SanitizedDataField,
		RowVariable:        c.RowVariable,
	}, nil
}
