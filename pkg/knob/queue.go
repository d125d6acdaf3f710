package knob

// queue is an unbounded FIFO hand-off between a producing and a consuming
// execution context. Push never blocks for more than the O(1) pump step, the
// out channel blocks when the queue is empty. Values are delivered in push
// order, none are dropped or duplicated.
type queue[T any] struct {
	in  chan T
	out chan T
}

func newQueue[T any]() *queue[T] {
	q := &queue[T]{
		in:  make(chan T),
		out: make(chan T),
	}

	go q.pump()
	return q
}

// Push appends v to the queue. Push must not be called after Close.
func (q *queue[T]) Push(v T) {
	q.in <- v
}

// C returns the channel the queued values are delivered on. The channel is
// closed once Close was called and all pending values are drained.
func (q *queue[T]) C() <-chan T {
	return q.out
}

// Close stops accepting values. Already queued values are still delivered.
func (q *queue[T]) Close() {
	close(q.in)
}

// pump moves values from the in channel to the out channel, buffering them
// while the consumer lags. The pump goroutine is always ready to receive,
// which keeps Push latency flat regardless of queue length.
func (q *queue[T]) pump() {
	var pending []T

	for {
		if len(pending) == 0 {
			v, open := <-q.in
			if !open {
				close(q.out)
				return
			}
			pending = append(pending, v)
		}

		select {
		case v, open := <-q.in:
			if !open {
				for _, p := range pending {
					q.out <- p
				}
				close(q.out)
				return
			}
			pending = append(pending, v)
		case q.out <- pending[0]:
			pending = pending[1:]
		}
	}
}
