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

package taskqueue

import (
	"math/bits"
)

// blockSize is the number of slots per block, one per bit of the atomic
// poll mask.
const blockSize = 64

const full = ^uint64(0)

// block stores up to blockSize in-flight tasks in place.
//
// pending and slots belong to whoever holds the Push/Poll call; wakers only
// touch the embedded wakeState.
type block[T Task] struct {
	wakeState

	// pending has bit i set iff slots[i] holds an incomplete task
	pending uint64
	slots   [blockSize]T
	wakers  [blockSize]Waker
}

func newBlock[T Task](sig *signal) *block[T] {
	b := &block[T]{}
	b.signal = sig
	for i := range b.wakers {
		b.wakers[i] = Waker{state: &b.wakeState, bit: 1 << uint(i)}
	}
	return b
}

func (b *block[T]) isFull() bool {
	return b.pending == full
}

// insert stores task in the lowest free slot and polls it once. A task that
// completes on that first poll never occupies the slot.
func (b *block[T]) insert(task T) {
	idx := bits.TrailingZeros64(^b.pending)
	b.slots[idx] = task
	if b.slots[idx].Poll(b.wakers[idx]) {
		var zero T
		b.slots[idx] = zero
		return
	}
	b.pending |= 1 << uint(idx)
}

// pollWoken repolls every pending slot whose waker fired since the last pass.
// Wakes that land while the pass runs stay in the mask for the next pass.
func (b *block[T]) pollWoken() {
	woken := b.poll.Swap(0) & b.pending
	for woken != 0 {
		idx := bits.TrailingZeros64(woken)
		woken &= woken - 1

		if b.slots[idx].Poll(b.wakers[idx]) {
			var zero T
			b.slots[idx] = zero
			b.pending &^= 1 << uint(idx)
		}
	}
}

func (b *block[T]) len() int {
	return bits.OnesCount64(b.pending)
}

// clear drops every stored task in place.
func (b *block[T]) clear() {
	var zero T
	for b.pending != 0 {
		idx := bits.TrailingZeros64(b.pending)
		b.pending &= b.pending - 1
		b.slots[idx] = zero
	}
}
