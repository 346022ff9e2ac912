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

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/watch"
	"k8s.io/client-go/kubernetes"

	"github.com/mikelane/reaperd/internal/mirror"
)

var (
	// ErrAlreadyStarted is returned by Run when the reflector is already
	// running; a reflector instance runs its stream loop at most once.
	ErrAlreadyStarted = errors.New("reflector already started")

	// ErrBackoffExceeded is returned by Run when consecutive stream
	// failures have pushed the reconnect delay past the ceiling.
	ErrBackoffExceeded = errors.New("watch reconnect backoff exceeded ceiling")
)

// Reflector keeps a pod mirror current via list+watch against a single
// namespace and label selector.
type Reflector struct {
	client        kubernetes.Interface
	namespace     string
	labelSelector string
	mirror        *mirror.Mirror
	backoff       BackoffConfig
	logger        *zap.Logger
	started       atomic.Bool
}

// New creates a reflector writing into the given mirror.
//
// Parameters:
//   - client: Kubernetes clientset used for list and watch requests
//   - namespace: namespace whose pods are mirrored
//   - labelSelector: selector restricting the mirrored set
//   - m: the mirror to maintain
//   - backoff: reconnect pacing (DefaultBackoffConfig for production use)
//   - logger: structured logger for lifecycle events
func New(client kubernetes.Interface, namespace, labelSelector string, m *mirror.Mirror, backoff BackoffConfig, logger *zap.Logger) *Reflector {
	return &Reflector{
		client:        client,
		namespace:     namespace,
		labelSelector: labelSelector,
		mirror:        m,
		backoff:       backoff,
		logger:        logger,
	}
}

// Bootstrap lists the full pod set and replaces the mirror with it. It
// returns the list's resource version, the point from which the next watch
// resumes. Callers must run Bootstrap to completion before reading the
// mirror, so the first cull pass never races an empty mirror.
func (r *Reflector) Bootstrap(ctx context.Context) (string, error) {
	list, err := r.client.CoreV1().Pods(r.namespace).List(ctx, metav1.ListOptions{
		LabelSelector: r.labelSelector,
	})
	if err != nil {
		return "", fmt.Errorf("failed to list pods: %w", err)
	}

	r.mirror.Replace(list.Items)

	r.logger.Info("bootstrapped pod mirror",
		zap.String("namespace", r.namespace),
		zap.String("label-selector", r.labelSelector),
		zap.Int("pods", len(list.Items)),
		zap.String("resource-version", list.ResourceVersion),
	)

	return list.ResourceVersion, nil
}

// Run drives the reconnect loop until a terminal failure. It never returns
// nil: the only exits are ErrAlreadyStarted (usage error), a context error
// (tests), or a terminal stream failure wrapping ErrBackoffExceeded.
//
// Run is intended to execute on its own goroutine, concurrently with cull
// passes reading the mirror.
func (r *Reflector) Run(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	bo := newBackoff(r.backoff)

	for {
		// CONNECTING: a fresh list heals whatever the dropped stream missed.
		resourceVersion, err := r.Bootstrap(ctx)
		if err == nil {
			err = r.stream(ctx, resourceVersion, bo)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		wait, ok := bo.next()
		if !ok {
			r.logger.Error("giving up on watch reconnect",
				zap.Error(err),
				zap.Duration("ceiling", r.backoff.MaxDelay),
			)
			return fmt.Errorf("%w: last error: %v", ErrBackoffExceeded, err)
		}

		r.logger.Warn("watch stream failed, backing off",
			zap.Error(err),
			zap.Duration("wait", wait),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// stream opens a watch at resourceVersion and applies notifications to the
// mirror until the stream fails. The watch is stopped on every exit path.
func (r *Reflector) stream(ctx context.Context, resourceVersion string, bo *backoff) error {
	w, err := r.client.CoreV1().Pods(r.namespace).Watch(ctx, metav1.ListOptions{
		LabelSelector:   r.labelSelector,
		ResourceVersion: resourceVersion,
	})
	if err != nil {
		return fmt.Errorf("failed to open watch: %w", err)
	}
	defer w.Stop()

	r.logger.Info("watch stream open",
		zap.String("namespace", r.namespace),
		zap.String("resource-version", resourceVersion),
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, open := <-w.ResultChan():
			if !open {
				return errors.New("watch stream closed")
			}
			if err := r.apply(event); err != nil {
				return err
			}
			bo.reset()
		}
	}
}

// apply folds one watch notification onto the mirror. Notifications are
// applied strictly in stream order; the caller is the only writer.
func (r *Reflector) apply(event watch.Event) error {
	switch event.Type {
	case watch.Bookmark:
		// Progress marker only, carries no pod state we track.
		return nil
	case watch.Error:
		return fmt.Errorf("watch error event: %v", event.Object)
	}

	pod, ok := event.Object.(*corev1.Pod)
	if !ok {
		return fmt.Errorf("unexpected object type %T in watch event", event.Object)
	}

	switch event.Type {
	case watch.Deleted:
		r.mirror.Delete(pod.Name)
		r.logger.Debug("pod removed from mirror", zap.String("pod", pod.Name))
	default: // Added, Modified
		r.mirror.Upsert(pod)
		r.logger.Debug("pod upserted into mirror", zap.String("pod", pod.Name))
	}

	return nil
}
