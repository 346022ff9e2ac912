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
	"sync/atomic"
	"testing"
	"time"

	"github.com/onsi/gomega"
	"go.uber.org/zap"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/watch"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"

	"github.com/mikelane/reaperd/internal/mirror"
)

func newPod(name string, labels map[string]string) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: "workers",
			Labels:    labels,
		},
	}
}

func testBackoff() BackoffConfig {
	return BackoffConfig{
		InitialDelay: time.Millisecond,
		MaxDelay:     4 * time.Millisecond,
		Factor:       2.0,
	}
}

func TestReflector_Bootstrap_replaces_mirror_with_matching_pods(t *testing.T) {
	workerLabels := map[string]string{"app": "worker"}
	client := fake.NewSimpleClientset(
		newPod("p1", workerLabels),
		newPod("p2", workerLabels),
		newPod("unrelated", map[string]string{"app": "frontend"}),
	)

	m := mirror.New()
	r := New(client, "workers", "app=worker", m, testBackoff(), zap.NewNop())

	if _, err := r.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap() returned error: %v", err)
	}

	if m.Len() != 2 {
		t.Errorf("mirror size = %d, want 2 (selector must exclude unrelated pods)", m.Len())
	}
	if _, ok := m.Get("unrelated"); ok {
		t.Error("mirror contains pod outside the label selector")
	}

	// A second bootstrap replaces rather than merges.
	stale := newPod("stale", workerLabels)
	m.Upsert(stale)

	if _, err := r.Bootstrap(context.Background()); err != nil {
		t.Fatalf("second Bootstrap() returned error: %v", err)
	}
	if _, ok := m.Get("stale"); ok {
		t.Error("Bootstrap merged instead of replacing the mirror")
	}
}

func TestReflector_Run_applies_stream_events_in_order(t *testing.T) {
	g := gomega.NewWithT(t)

	client := fake.NewSimpleClientset(newPod("p1", nil))
	fw := watch.NewFake()
	client.PrependWatchReactor("pods", k8stesting.DefaultWatchReactor(fw, nil))

	m := mirror.New()
	r := New(client, "workers", "", m, testBackoff(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- r.Run(ctx)
	}()

	g.Eventually(m.Len, time.Second).Should(gomega.Equal(1), "bootstrap should populate the mirror")

	// ADD then MODIFY: the mirror holds last-written state for the name.
	fw.Add(newPod("p4", nil))
	g.Eventually(func() bool {
		_, ok := m.Get("p4")
		return ok
	}, time.Second).Should(gomega.BeTrue())

	updated := newPod("p4", map[string]string{"phase": "running"})
	fw.Modify(updated)
	g.Eventually(func() string {
		pod, ok := m.Get("p4")
		if !ok {
			return ""
		}
		return pod.Labels["phase"]
	}, time.Second).Should(gomega.Equal("running"))

	// DELETE before any cull pass: p4 leaves the mirror entirely.
	fw.Delete(updated)
	g.Eventually(func() bool {
		_, ok := m.Get("p4")
		return ok
	}, time.Second).Should(gomega.BeFalse())
	g.Expect(m.Len()).To(gomega.Equal(1), "only the bootstrap pod should remain")

	cancel()
	g.Eventually(done, time.Second).Should(gomega.Receive(gomega.MatchError(context.Canceled)))
}

func TestReflector_Run_rejects_second_start(t *testing.T) {
	g := gomega.NewWithT(t)

	client := fake.NewSimpleClientset(newPod("p1", nil))
	client.PrependWatchReactor("pods", k8stesting.DefaultWatchReactor(watch.NewFake(), nil))

	m := mirror.New()
	r := New(client, "workers", "", m, testBackoff(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = r.Run(ctx)
	}()

	g.Eventually(m.Len, time.Second).Should(gomega.Equal(1), "first Run should reach streaming")

	if err := r.Run(ctx); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Run() = %v, want ErrAlreadyStarted", err)
	}
}

func TestReflector_Run_gives_up_after_backoff_ceiling(t *testing.T) {
	client := fake.NewSimpleClientset()

	var watchAttempts int32
	client.PrependWatchReactor("pods", func(action k8stesting.Action) (bool, watch.Interface, error) {
		atomic.AddInt32(&watchAttempts, 1)
		return true, nil, errors.New("connection refused")
	})

	m := mirror.New()
	r := New(client, "workers", "", m, testBackoff(), zap.NewNop())

	err := r.Run(context.Background())
	if !errors.Is(err, ErrBackoffExceeded) {
		t.Fatalf("Run() = %v, want ErrBackoffExceeded", err)
	}

	// Waits of 1ms, 2ms and 4ms separate the first four attempts; the next
	// doubling passes the 4ms ceiling, so no fifth attempt is made.
	if got := atomic.LoadInt32(&watchAttempts); got != 4 {
		t.Errorf("watch attempts = %d, want 4", got)
	}
}

func TestReflector_Run_rebootstraps_after_stream_failure(t *testing.T) {
	g := gomega.NewWithT(t)

	client := fake.NewSimpleClientset(newPod("p1", nil))

	watchers := []*watch.FakeWatcher{watch.NewFake(), watch.NewFake()}
	var watchAttempts int32
	client.PrependWatchReactor("pods", func(action k8stesting.Action) (bool, watch.Interface, error) {
		i := atomic.AddInt32(&watchAttempts, 1) - 1
		if int(i) < len(watchers) {
			return true, watchers[i], nil
		}
		return true, nil, errors.New("no more watchers")
	})

	m := mirror.New()
	r := New(client, "workers", "", m, testBackoff(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = r.Run(ctx)
	}()

	g.Eventually(m.Len, time.Second).Should(gomega.Equal(1))

	// An event that only ever existed on the stream, not in the backend.
	watchers[0].Add(newPod("ghost", nil))
	g.Eventually(func() bool {
		_, ok := m.Get("ghost")
		return ok
	}, time.Second).Should(gomega.BeTrue())

	// Drop the stream: the reflector must re-list, which heals the mirror
	// back to the backend's truth and discards the ghost.
	watchers[0].Stop()

	g.Eventually(func() int32 {
		return atomic.LoadInt32(&watchAttempts)
	}, time.Second).Should(gomega.BeNumerically(">=", 2), "a reconnect should open a second watch")
	g.Eventually(func() bool {
		_, ok := m.Get("ghost")
		return ok
	}, time.Second).Should(gomega.BeFalse())
	g.Expect(m.Len()).To(gomega.Equal(1))
}
