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

// Package mirror implements the in-memory pod mirror shared between the
// reflector (writer) and the culler (reader).
//
// The mirror is a name-keyed map guarded by an RWMutex. Per-key insert,
// overwrite, and delete operations are atomic and safe to interleave
// arbitrarily between goroutines. No cross-key consistency is provided:
// a reader that needs a stable view across entries must take a Snapshot,
// which copies the current entry set under the read lock.
//
// Replace swaps the whole underlying map in one step, which gives bootstrap
// its replace-not-merge semantics and keeps readers from ever observing a
// partially rebuilt mirror.
package mirror
