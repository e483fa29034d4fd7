package config

import (
	"fmt"

	"strings"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/steplock/internal/core/styles"
	"github.com/hay-kot/steplock/internal/core/taskgen"
)

// Validate checks config values using criterio field errors.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.Theme != "" {
		if _, ok := styles.GetPalette(c.Theme); !ok {
			errs = errs.Append("theme", fmt.Errorf("unknown theme %q, valid themes: %s", c.Theme, strings.Join(styles.ThemeNames(), ", ")))
		}
	}

	if c.Generator.Model == "" {
		errs = errs.Append("generator.model", fmt.Errorf("must not be empty"))
	}
	if c.Generator.BaseURL == "" {
		errs = errs.Append("generator.base_url", fmt.Errorf("must not be empty"))
	}
	if c.Generator.TimeoutSeconds <= 0 {
		errs = errs.Append("generator.timeout_seconds", fmt.Errorf("must be positive, got %d", c.Generator.TimeoutSeconds))
	}
	if c.Generator.MaxRetries < 0 || c.Generator.MaxRetries > 10 {
		errs = errs.Append("generator.max_retries", fmt.Errorf("must be between 0 and 10, got %d", c.Generator.MaxRetries))
	}
	if c.Generator.MaxBatch < 1 || c.Generator.MaxBatch > taskgen.MaxBatch {
		errs = errs.Append("generator.max_batch", fmt.Errorf("must be between 1 and %d, got %d", taskgen.MaxBatch, c.Generator.MaxBatch))
	}

	return errs.ToError()
}
