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

// Package config loads reaperd's process configuration from environment
// variables.
//
// Configuration is read exactly once, before any other component is
// constructed. Recognized variables:
//
//	REAPERD_NAMESPACE              target namespace (required)
//	REAPERD_LABEL_SELECTOR         pod label selector (default: app=worker)
//	REAPERD_MAX_AGE_SECONDS        max pod age before deletion (default: 86400)
//	REAPERD_CULL_INTERVAL_SECONDS  seconds between cull passes (default: 600)
//	REAPERD_DEBUG                  enable debug logging (default: false)
//
// A missing namespace or an unparseable numeric value is a startup error;
// the process must not begin watching with a half-formed configuration.
package config
