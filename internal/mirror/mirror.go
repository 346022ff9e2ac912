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

package mirror

import (
	"sync"

	corev1 "k8s.io/api/core/v1"
)

// Mirror is a concurrency-safe mapping from pod name to the last-known pod
// state. It is the single resource shared between the reflector goroutine
// and the cull loop.
type Mirror struct {
	mu   sync.RWMutex
	pods map[string]*corev1.Pod
}

// New returns an empty mirror.
func New() *Mirror {
	return &Mirror{
		pods: make(map[string]*corev1.Pod),
	}
}

// Replace swaps the entire mirror contents for the given pods, keyed by
// name. Readers see either the previous map or the new one, never a mix.
func (m *Mirror) Replace(pods []corev1.Pod) {
	next := make(map[string]*corev1.Pod, len(pods))
	for i := range pods {
		pod := &pods[i]
		next[pod.Name] = pod
	}

	m.mu.Lock()
	m.pods = next
	m.mu.Unlock()
}

// Upsert inserts or overwrites the entry for the pod's name.
func (m *Mirror) Upsert(pod *corev1.Pod) {
	m.mu.Lock()
	m.pods[pod.Name] = pod
	m.mu.Unlock()
}

// Delete removes the named entry. Deleting an absent name is a no-op.
func (m *Mirror) Delete(name string) {
	m.mu.Lock()
	delete(m.pods, name)
	m.mu.Unlock()
}

// Get returns the entry for name, if present.
func (m *Mirror) Get(name string) (*corev1.Pod, bool) {
	m.mu.RLock()
	pod, ok := m.pods[name]
	m.mu.RUnlock()
	return pod, ok
}

// Snapshot returns a stable copy of the current entry set. The returned
// slice is not affected by subsequent mirror mutation, so callers can
// iterate it without holding any lock.
func (m *Mirror) Snapshot() []*corev1.Pod {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pods := make([]*corev1.Pod, 0, len(m.pods))
	for _, pod := range m.pods {
		pods = append(pods, pod)
	}
	return pods
}

// Len returns the current number of entries.
func (m *Mirror) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pods)
}
