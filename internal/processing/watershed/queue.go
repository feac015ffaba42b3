package watershed

// bucketQueue is a monotone priority queue over 8-bit priorities. Each
// bucket is FIFO, so equal priorities pop in insertion order.
type bucketQueue struct {
	buckets [256][]int
	heads   [256]int
	lowest  int
	size    int
}

func (q *bucketQueue) push(priority uint8, idx int) {
	p := int(priority)
	q.buckets[p] = append(q.buckets[p], idx)
	if p < q.lowest {
		q.lowest = p
	}
	q.size++
}

func (q *bucketQueue) pop() (int, bool) {
	if q.size == 0 {
		return 0, false
	}

	for q.heads[q.lowest] == len(q.buckets[q.lowest]) {
		q.buckets[q.lowest] = q.buckets[q.lowest][:0]
		q.heads[q.lowest] = 0
		q.lowest++
	}

	idx := q.buckets[q.lowest][q.heads[q.lowest]]
	q.heads[q.lowest]++
	q.size--
	return idx, true
}

func (q *bucketQueue) len() int {
	return q.size
}
