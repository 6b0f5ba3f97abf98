/*
 * MIT License
 *
 * Copyright (c) 2022-2025 Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package address

// mapSender transforms every message before handing it to the wrapped address.
type mapSender[N, M any] struct {
	inner     *Address[M]
	transform func(N) M
}

func (s *mapSender[N, M]) Send(msg N) {
	s.inner.Send(s.transform(msg))
}

func (s *mapSender[N, M]) Close() {
	s.inner.Release()
}

// filterMapSender drops messages for which the transform reports false.
type filterMapSender[N, M any] struct {
	inner     *Address[M]
	transform func(N) (M, bool)
}

func (s *filterMapSender[N, M]) Send(msg N) {
	if out, ok := s.transform(msg); ok {
		s.inner.Send(out)
	}
}

func (s *filterMapSender[N, M]) Close() {
	s.inner.Release()
}

// Map returns an Address accepting N that delivers transform(n) to addr.
//
// The adapter holds its own clone of addr, released once the last clone of the
// returned Address is released. The caller keeps ownership of addr.
func Map[N, M any](addr *Address[M], transform func(N) M) *Address[N] {
	return New[N](&mapSender[N, M]{
		inner:     addr.Clone(),
		transform: transform,
	}, WithLogger(addr.logger))
}

// FilterMap is like Map but drops every message for which transform
// returns false.
func FilterMap[N, M any](addr *Address[M], transform func(N) (M, bool)) *Address[N] {
	return New[N](&filterMapSender[N, M]{
		inner:     addr.Clone(),
		transform: transform,
	}, WithLogger(addr.logger))
}
