/*
Copyright (c) 2025 Mike Lane

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variable names recognized by Load.
const (
	EnvNamespace     = "REAPERD_NAMESPACE"
	EnvLabelSelector = "REAPERD_LABEL_SELECTOR"
	EnvMaxAge        = "REAPERD_MAX_AGE_SECONDS"
	EnvCullInterval  = "REAPERD_CULL_INTERVAL_SECONDS"
	EnvDebug         = "REAPERD_DEBUG"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultLabelSelector       = "app=worker"
	DefaultMaxAgeSeconds       = 86400
	DefaultCullIntervalSeconds = 600
)

// Config holds the full process configuration. It is populated once at
// startup and treated as immutable afterwards.
type Config struct {
	// Namespace is the namespace whose pods are watched and culled.
	Namespace string

	// LabelSelector restricts watching and culling to matching pods.
	LabelSelector string

	// MaxAge is the running duration beyond which a pod is deleted.
	MaxAge time.Duration

	// CullInterval is the delay between consecutive cull passes.
	CullInterval time.Duration

	// Debug enables per-pod age evaluation logging.
	Debug bool
}

// Load reads the configuration from the environment and applies defaults.
//
// Returns an error if the required namespace is missing or if a numeric
// variable cannot be parsed.
func Load() (*Config, error) {
	namespace := os.Getenv(EnvNamespace)
	if namespace == "" {
		return nil, fmt.Errorf("%s is required", EnvNamespace)
	}

	labelSelector := os.Getenv(EnvLabelSelector)
	if labelSelector == "" {
		labelSelector = DefaultLabelSelector
	}

	maxAge, err := secondsFromEnv(EnvMaxAge, DefaultMaxAgeSeconds)
	if err != nil {
		return nil, err
	}

	cullInterval, err := secondsFromEnv(EnvCullInterval, DefaultCullIntervalSeconds)
	if err != nil {
		return nil, err
	}

	debug := false
	if v := os.Getenv(EnvDebug); v != "" {
		debug, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvDebug, v, err)
		}
	}

	return &Config{
		Namespace:     namespace,
		LabelSelector: labelSelector,
		MaxAge:        maxAge,
		CullInterval:  cullInterval,
		Debug:         debug,
	}, nil
}

// secondsFromEnv parses an environment variable holding a duration in whole
// seconds, falling back to a default when unset.
func secondsFromEnv(key string, fallback int) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(fallback) * time.Second, nil
	}

	seconds, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, v)
	}

	return time.Duration(seconds) * time.Second, nil
}
