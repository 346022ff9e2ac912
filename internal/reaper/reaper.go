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

package reaper

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mikelane/reaperd/internal/culler"
	"github.com/mikelane/reaperd/internal/reflector"
)

// Reaper runs the cull loop against a reflector-maintained mirror.
type Reaper struct {
	reflector *reflector.Reflector
	culler    *culler.Culler
	interval  time.Duration
	logger    *zap.Logger
}

// New creates a reaper that culls every interval.
func New(r *reflector.Reflector, c *culler.Culler, interval time.Duration, logger *zap.Logger) *Reaper {
	return &Reaper{
		reflector: r,
		culler:    c,
		interval:  interval,
		logger:    logger,
	}
}

// Run starts the control loop and blocks until a fatal condition.
//
// The mirror is bootstrapped before the first cull pass, so the loop never
// reads an empty mirror by accident of startup ordering. The reflector's
// watch loop runs on a background goroutine; its terminal error, a cull
// failure, or context cancellation are the only ways out.
func (r *Reaper) Run(ctx context.Context) error {
	if _, err := r.reflector.Bootstrap(ctx); err != nil {
		return fmt.Errorf("failed to bootstrap pod mirror: %w", err)
	}

	watchDone := make(chan error, 1)
	go func() {
		watchDone <- r.reflector.Run(ctx)
	}()

	r.logger.Info("starting cull loop", zap.Duration("interval", r.interval))

	for {
		if _, err := r.culler.Cull(ctx, time.Now().UTC()); err != nil {
			return fmt.Errorf("cull pass failed: %w", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-watchDone:
			return fmt.Errorf("pod watch terminated: %w", err)
		case <-time.After(r.interval):
		}
	}
}
