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

// Package culler deletes pods whose running duration exceeds a fixed
// maximum age.
//
// A cull pass reads a point-in-time snapshot of the mirror, so it never
// blocks the reflector and never observes a half-applied stream. Pods
// without a start time have not begun running and are skipped. Deletion is
// strictly age > max age; a pod exactly at the threshold survives the pass.
//
// The culler never removes entries from the mirror itself. The watch
// stream's DELETE notification is the only authoritative removal signal,
// so a freshly deleted pod stays in the mirror (and in the mirror-size
// summaries) until the stream confirms it. The next pass re-evaluates such
// a pod and finds nothing left to delete.
package culler
