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

package culler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/mikelane/reaperd/internal/mirror"
)

// Culler deletes pods older than a fixed age threshold, reading candidates
// from the mirror and issuing deletes against the cluster.
type Culler struct {
	client    kubernetes.Interface
	namespace string
	maxAge    time.Duration
	mirror    *mirror.Mirror
	logger    *zap.Logger
}

// New creates a culler for the given namespace and age threshold.
func New(client kubernetes.Interface, namespace string, maxAge time.Duration, m *mirror.Mirror, logger *zap.Logger) *Culler {
	return &Culler{
		client:    client,
		namespace: namespace,
		maxAge:    maxAge,
		mirror:    m,
		logger:    logger,
	}
}

// Cull performs one deletion pass and returns the number of pods whose
// deletion was requested.
//
// now is injected rather than read internally so passes are deterministic;
// pod start times are compared against it as UTC instants. A pod that
// disappeared between the snapshot and the delete call is treated as
// already gone. Any other delete failure aborts the pass and propagates:
// a silently incomplete pass is worse than a visible crash-and-restart.
//
// Cull never mutates the mirror; entries leave it only via the watch
// stream's delete notification.
func (c *Culler) Cull(ctx context.Context, now time.Time) (int, error) {
	deleted := 0

	for _, pod := range c.mirror.Snapshot() {
		if pod.Status.StartTime == nil {
			c.logger.Debug("skipping pod without start time", zap.String("pod", pod.Name))
			continue
		}

		age := now.Sub(pod.Status.StartTime.Time)
		if age <= c.maxAge {
			c.logger.Debug("pod within max age",
				zap.String("pod", pod.Name),
				zap.Duration("age", age),
			)
			continue
		}

		err := c.client.CoreV1().Pods(c.namespace).Delete(ctx, pod.Name, metav1.DeleteOptions{})
		if err != nil {
			if apierrors.IsNotFound(err) {
				// The optimistic-removal race: we already asked for this
				// pod's deletion on an earlier pass, or it exited on its
				// own, and the confirming watch event hasn't landed yet.
				c.logger.Debug("pod already gone", zap.String("pod", pod.Name))
				continue
			}
			return deleted, fmt.Errorf("failed to delete pod %s: %w", pod.Name, err)
		}

		deleted++
		c.logger.Info("deleted pod past max age",
			zap.String("pod", pod.Name),
			zap.Duration("age", age),
		)
	}

	c.logger.Info("cull pass complete",
		zap.Duration("max-age", c.maxAge),
		zap.Int("deleted", deleted),
		zap.Int("mirror-size", c.mirror.Len()),
	)

	return deleted, nil
}
