package datastructure

import (
	"errors"
)

var ErrEmptyHeap = errors.New("heap is empty")

type heapEntry[T comparable] struct {
	rank float64
	item T
}

// MinHeap. d-ary min-heap addressed by item, so the rank of a queued item can be decreased in place.
type MinHeap[T comparable] struct {
	heap []heapEntry[T]
	pos  map[T]int
	d    int
}

func NewFourAryHeap[T comparable]() *MinHeap[T] {
	return NewdAryHeap[T](4)
}

func NewdAryHeap[T comparable](d int) *MinHeap[T] {
	return &MinHeap[T]{
		heap: make([]heapEntry[T], 0),
		pos:  make(map[T]int),
		d:    d,
	}
}

func (h *MinHeap[T]) parent(i int) int {
	return (i - 1) / h.d
}

func (h *MinHeap[T]) siftUp(i int) {
	for i != 0 && h.heap[i].rank < h.heap[h.parent(i)].rank {
		h.swap(i, h.parent(i))
		i = h.parent(i)
	}
}

func (h *MinHeap[T]) siftDown(i int) {
	for {
		first := i*h.d + 1
		if first >= len(h.heap) {
			return
		}
		last := min(first+h.d, len(h.heap))

		smallest := first
		for c := first + 1; c < last; c++ {
			if h.heap[c].rank < h.heap[smallest].rank {
				smallest = c
			}
		}
		if h.heap[smallest].rank >= h.heap[i].rank {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}

func (h *MinHeap[T]) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.pos[h.heap[i].item] = i
	h.pos[h.heap[j].item] = j
}

func (h *MinHeap[T]) IsEmpty() bool {
	return len(h.heap) == 0
}

func (h *MinHeap[T]) Clear() {
	h.heap = h.heap[:0]
	clear(h.pos)
}

// Insert. pushes an item that is not queued yet, use DecreaseKey for queued ones.
func (h *MinHeap[T]) Insert(item T, rank float64) {
	h.heap = append(h.heap, heapEntry[T]{rank: rank, item: item})
	i := len(h.heap) - 1
	h.pos[item] = i
	h.siftUp(i)
}

// DecreaseKey. fails when item is not queued or rank is larger than the current one.
func (h *MinHeap[T]) DecreaseKey(item T, rank float64) error {
	i, ok := h.pos[item]
	if !ok || h.heap[i].rank < rank {
		return errors.New("invalid item or new rank")
	}
	h.heap[i].rank = rank
	h.siftUp(i)
	return nil
}

func (h *MinHeap[T]) ExtractMin() (T, float64, error) {
	var zero T
	if h.IsEmpty() {
		return zero, 0, ErrEmptyHeap
	}
	root := h.heap[0]
	last := len(h.heap) - 1
	h.swap(0, last)
	h.heap = h.heap[:last]
	delete(h.pos, root.item)
	if len(h.heap) > 0 {
		h.siftDown(0)
	}
	return root.item, root.rank, nil
}
