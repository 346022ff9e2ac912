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
	"testing"
	"time"
)

func TestLoad_requires_namespace(t *testing.T) {
	t.Setenv(EnvNamespace, "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() succeeded without a namespace, want error")
	}
}

func TestLoad_applies_defaults(t *testing.T) {
	t.Setenv(EnvNamespace, "workers")
	t.Setenv(EnvLabelSelector, "")
	t.Setenv(EnvMaxAge, "")
	t.Setenv(EnvCullInterval, "")
	t.Setenv(EnvDebug, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Namespace != "workers" {
		t.Errorf("Namespace = %q, want %q", cfg.Namespace, "workers")
	}
	if cfg.LabelSelector != DefaultLabelSelector {
		t.Errorf("LabelSelector = %q, want %q", cfg.LabelSelector, DefaultLabelSelector)
	}
	if cfg.MaxAge != 24*time.Hour {
		t.Errorf("MaxAge = %v, want %v", cfg.MaxAge, 24*time.Hour)
	}
	if cfg.CullInterval != 10*time.Minute {
		t.Errorf("CullInterval = %v, want %v", cfg.CullInterval, 10*time.Minute)
	}
	if cfg.Debug {
		t.Error("Debug = true, want false by default")
	}
}

func TestLoad_reads_overrides(t *testing.T) {
	t.Setenv(EnvNamespace, "workers")
	t.Setenv(EnvLabelSelector, "component=batch")
	t.Setenv(EnvMaxAge, "3600")
	t.Setenv(EnvCullInterval, "60")
	t.Setenv(EnvDebug, "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.LabelSelector != "component=batch" {
		t.Errorf("LabelSelector = %q, want %q", cfg.LabelSelector, "component=batch")
	}
	if cfg.MaxAge != time.Hour {
		t.Errorf("MaxAge = %v, want %v", cfg.MaxAge, time.Hour)
	}
	if cfg.CullInterval != time.Minute {
		t.Errorf("CullInterval = %v, want %v", cfg.CullInterval, time.Minute)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
}

func TestLoad_rejects_unparseable_values(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non-numeric max age", key: EnvMaxAge, value: "one day"},
		{name: "negative max age", key: EnvMaxAge, value: "-1"},
		{name: "non-numeric interval", key: EnvCullInterval, value: "often"},
		{name: "zero interval", key: EnvCullInterval, value: "0"},
		{name: "non-boolean debug", key: EnvDebug, value: "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvNamespace, "workers")
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() succeeded with %s=%q, want error", tt.key, tt.value)
			}
		})
	}
}
