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

// Package reflector maintains the pod mirror via Kubernetes list+watch.
//
// Bootstrap issues a full list scoped by namespace and label selector and
// replaces the mirror with the result; the returned resource version marks
// the point from which the watch stream resumes without gaps. Run then
// drives a connect/stream/backoff loop:
//
//	CONNECTING -> STREAMING -> (on error) BACKOFF -> CONNECTING -> ...
//
// Every reconnect re-bootstraps, so notifications missed during a
// disconnect are healed by the fresh list rather than replayed. The
// reconnect delay doubles after each consecutive failure and resets to its
// initial value once a notification is applied. When the delay grows past
// the configured ceiling, Run gives up and returns ErrBackoffExceeded: a
// culler that cannot observe the cluster must not keep running against a
// stale mirror, and the process supervisor's restart is the recovery path.
package reflector
