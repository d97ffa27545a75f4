package config

import (
	"fmt"
	"strings"

	"github.com/milk9111/hexnav/logging"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

func (e ValidationErrors) Is(target error) bool {
	return target == ErrInvalid
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(c.Map.Name) == "" && strings.TrimSpace(c.Map.Path) == "" {
		errs = append(errs, ValidationError{Field: "map", Value: "", Message: "either map.name or map.path is required"})
	}

	if !finite(c.Layout.TileWidth) || c.Layout.TileWidth <= 0 {
		errs = append(errs, ValidationError{Field: "layout.tile_width", Value: c.Layout.TileWidth, Message: "must be positive"})
	}
	if !finite(c.Layout.RowHeight) || c.Layout.RowHeight <= 0 {
		errs = append(errs, ValidationError{Field: "layout.row_height", Value: c.Layout.RowHeight, Message: "must be positive"})
	}

	if !finite(c.Agent.Speed) || c.Agent.Speed < 0 {
		errs = append(errs, ValidationError{Field: "agent.speed", Value: c.Agent.Speed, Message: "must be zero (instant) or positive"})
	}
	if !finite(c.Agent.RotationSpeed) || c.Agent.RotationSpeed < 0 {
		errs = append(errs, ValidationError{Field: "agent.rotation_speed", Value: c.Agent.RotationSpeed, Message: "must be zero (instant) or positive"})
	}

	if c.Sim.TickRate <= 0 || c.Sim.TickRate > 1000 {
		errs = append(errs, ValidationError{Field: "sim.tick_rate", Value: c.Sim.TickRate, Message: "must be between 1 and 1000"})
	}
	if c.Sim.MaxTicks < 0 {
		errs = append(errs, ValidationError{Field: "sim.max_ticks", Value: c.Sim.MaxTicks, Message: "must be non-negative"})
	}

	if c.Logging.Level != "" && !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, ValidationError{Field: "logging.level", Value: c.Logging.Level, Message: "must be one of debug, info, warn, error"})
	}

	return errs
}
