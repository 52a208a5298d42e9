// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validateBaseURL accepts only a bare http(s) origin such as
// https://openlibrary.org. The catalog client appends /search.json and the
// cover paths itself, so a configured path or query would be doubled.
func validateBaseURL(raw, env string) error {
	u, err := url.Parse(raw)
	switch {
	case err != nil:
		return fmt.Errorf("%s: %w", env, err)
	case u.Scheme != "http" && u.Scheme != "https":
		return fmt.Errorf("%s: unsupported scheme %q", env, u.Scheme)
	case u.Host == "":
		return fmt.Errorf("%s: missing host in %q", env, raw)
	case strings.Trim(u.Path, "/") != "" || u.RawQuery != "":
		return fmt.Errorf("%s: want an origin only, got %q", env, raw)
	}
	return nil
}
