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

package reflector

import "time"

// BackoffConfig defines the reconnect pacing for the watch stream.
type BackoffConfig struct {
	// InitialDelay is the wait after the first failure, and the value the
	// delay resets to after a successfully applied notification.
	InitialDelay time.Duration

	// MaxDelay is the ceiling. Once doubling pushes the delay past it the
	// reflector stops reconnecting and fails terminally.
	MaxDelay time.Duration

	// Factor multiplies the delay after each consecutive failure.
	Factor float64
}

// DefaultBackoffConfig returns the production reconnect pacing.
func DefaultBackoffConfig() BackoffConfig {
	return BackoffConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     30 * time.Second,
		Factor:       2.0,
	}
}

// backoff tracks the current reconnect delay between stream failures.
type backoff struct {
	cfg   BackoffConfig
	delay time.Duration
}

func newBackoff(cfg BackoffConfig) *backoff {
	return &backoff{cfg: cfg, delay: cfg.InitialDelay}
}

// reset returns the delay to its initial value. Called whenever a
// notification is successfully applied to the mirror.
func (b *backoff) reset() {
	b.delay = b.cfg.InitialDelay
}

// next returns the wait before the upcoming reconnect attempt and advances
// the delay for the one after. ok is false once the delay has grown past
// the ceiling, at which point no further reconnects may be attempted.
func (b *backoff) next() (wait time.Duration, ok bool) {
	if b.delay > b.cfg.MaxDelay {
		return 0, false
	}

	wait = b.delay
	b.delay = time.Duration(float64(b.delay) * b.cfg.Factor)
	return wait, true
}
