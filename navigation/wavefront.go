package navigation

// --- Indexed min-heap for the wavefront ---

type waveEntry struct {
	idx  int32   // Flat grid index (y*width + x)
	dist float64 // Priority: distance to root at the time of the last push/update
}

// wavefront is a min-heap of cell indices keyed by distance with O(1) membership
// pos maps a cell index to its heap slot, -1 if not queued
type wavefront struct {
	heap []waveEntry
	pos  []int32
}

func newWavefront(cells, capacity int) *wavefront {
	w := &wavefront{
		heap: make([]waveEntry, 0, capacity),
		pos:  make([]int32, cells),
	}
	for i := range w.pos {
		w.pos[i] = -1
	}
	return w
}

func (w *wavefront) Len() int { return len(w.heap) }

func (w *wavefront) Contains(idx int) bool {
	return w.pos[idx] >= 0
}

// Push adds idx, caller guarantees it is not already queued
func (w *wavefront) Push(idx int, dist float64) {
	i := len(w.heap)
	w.heap = append(w.heap, waveEntry{idx: int32(idx), dist: dist})
	w.pos[idx] = int32(i)
	w.siftUp(i)
}

// Update changes the priority of a queued idx in place
func (w *wavefront) Update(idx int, dist float64) {
	i := int(w.pos[idx])
	old := w.heap[i].dist
	w.heap[i].dist = dist
	if dist < old {
		w.siftUp(i)
	} else if dist > old {
		w.siftDown(i)
	}
}

// Upsert pushes idx or updates its priority if already queued
func (w *wavefront) Upsert(idx int, dist float64) {
	if w.Contains(idx) {
		w.Update(idx, dist)
		return
	}
	w.Push(idx, dist)
}

// PopMin removes and returns the index with the smallest distance
func (w *wavefront) PopMin() int {
	e := w.heap[0]
	last := len(w.heap) - 1
	w.swap(0, last)
	w.heap = w.heap[:last]
	w.pos[e.idx] = -1
	if last > 0 {
		w.siftDown(0)
	}
	return int(e.idx)
}

// Reset empties the queue without releasing storage
func (w *wavefront) Reset() {
	for _, e := range w.heap {
		w.pos[e.idx] = -1
	}
	w.heap = w.heap[:0]
}

func (w *wavefront) swap(i, j int) {
	w.heap[i], w.heap[j] = w.heap[j], w.heap[i]
	w.pos[w.heap[i].idx] = int32(i)
	w.pos[w.heap[j].idx] = int32(j)
}

func (w *wavefront) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if w.heap[parent].dist <= w.heap[i].dist {
			break
		}
		w.swap(parent, i)
		i = parent
	}
}

func (w *wavefront) siftDown(i int) {
	n := len(w.heap)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		smallest := left
		if right := left + 1; right < n && w.heap[right].dist < w.heap[left].dist {
			smallest = right
		}
		if w.heap[i].dist <= w.heap[smallest].dist {
			break
		}
		w.swap(i, smallest)
		i = smallest
	}
}
