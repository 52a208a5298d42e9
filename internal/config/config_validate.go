// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package config

import (
	"fmt"

	"github.com/tomtom215/bookoptimal/internal/validation"
)

// Validate checks struct tags first, then the rules that span fields.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}

	checks := []func() error{
		c.validateLibrary,
		c.validateAnalytics,
		c.validateCatalog,
		c.validateRecommend,
		c.validateAPI,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateLibrary() error {
	if !c.Library.InMemory && c.Library.Path == "" {
		return fmt.Errorf("LIBRARY_PATH is required unless LIBRARY_IN_MEMORY=true")
	}
	return nil
}

func (c *Config) validateAnalytics() error {
	if c.Analytics.Enabled && c.Analytics.Path == "" {
		return fmt.Errorf("ANALYTICS_PATH is required when ANALYTICS_ENABLED=true (use :memory: for RAM only)")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if err := validateBaseURL(c.Catalog.BaseURL, "CATALOG_BASE_URL"); err != nil {
		return err
	}
	return validateBaseURL(c.Catalog.CoversURL, "CATALOG_COVERS_URL")
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.PercentileProbes > 0 {
		last := r.PercentileBase + float64(r.PercentileProbes-1)*r.PercentileStep
		if last >= 1 {
			return fmt.Errorf("recommend percentile probes reach %.2f, must stay below 1", last)
		}
	}
	return nil
}

func (c *Config) validateAPI() error {
	if !c.IsProduction() {
		return nil
	}
	for _, origin := range c.API.CORSOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ORIGINS must list explicit origins when ENVIRONMENT=production")
		}
	}
	return nil
}
