package knob

import (
	"math/rand"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueDeliversInOrder(t *testing.T) {
	q := newQueue[int]()

	const n = 10000

	go func() {
		for i := 0; i < n; i++ {
			q.Push(i)

			// randomize producer timing relative to the consumer
			if rand.Intn(4) == 0 {
				runtime.Gosched()
			}
		}
		q.Close()
	}()

	var got []int
	for v := range q.C() {
		got = append(got, v)
	}

	require.Len(t, got, n, "no value may be dropped or duplicated")
	for i, v := range got {
		require.Equalf(t, i, v, "value %d out of order", i)
	}
}

func TestQueuePushNeverBlocksOnSlowConsumer(t *testing.T) {
	q := newQueue[int]()

	// nothing consumes while pushing
	for i := 0; i < 1000; i++ {
		q.Push(i)
	}
	q.Close()

	var got []int
	for v := range q.C() {
		got = append(got, v)
	}
	assert.Len(t, got, 1000)
	assert.Equal(t, 0, got[0])
	assert.Equal(t, 999, got[999])
}

func TestQueueCloseDrainsPending(t *testing.T) {
	q := newQueue[string]()

	q.Push("one")
	q.Push("two")
	q.Close()

	var got []string
	for v := range q.C() {
		got = append(got, v)
	}
	assert.Equal(t, []string{"one", "two"}, got)
}
