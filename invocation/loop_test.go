package invocation

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_SerialExecution(t *testing.T) {
	loop := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runDone := make(chan error, 1)
	go func() { runDone <- loop.Run(ctx) }()

	var active, overlaps int32
	var wg sync.WaitGroup
	var order []int
	var mux sync.Mutex
	for i := 0; i < 20; i++ {
		wg.Add(1)
		p := New[int]("")
		p.Then(loop, func(v int) {
			defer wg.Done()
			if atomic.AddInt32(&active, 1) > 1 {
				atomic.AddInt32(&overlaps, 1)
			}
			time.Sleep(time.Millisecond)
			mux.Lock()
			order = append(order, v)
			mux.Unlock()
			atomic.AddInt32(&active, -1)
		}, func(*Failure) { wg.Done() })
		go p.Succeed(i)
	}
	wg.Wait()
	assert.EqualValues(t, 0, atomic.LoadInt32(&overlaps))
	assert.Len(t, order, 20)

	loop.Close()
	select {
	case err := <-runDone:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop after Close")
	}
}

func TestLoop_PostOrderAndClose(t *testing.T) {
	loop := NewLoop()
	var got []int
	for i := 0; i < 3; i++ {
		i := i
		loop.Post(func() { got = append(got, i) })
	}
	loop.Close()
	loop.Post(func() { got = append(got, 99) })
	require.NoError(t, loop.Run(context.Background()))
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestLoop_ContextCancel(t *testing.T) {
	loop := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, loop.Run(ctx), context.Canceled)
}

func TestLoop_AcceptedPostsRunAcrossClose(t *testing.T) {
	for round := 0; round < 50; round++ {
		loop := NewLoop()
		runDone := make(chan error, 1)
		go func() { runDone <- loop.Run(context.Background()) }()

		var accepted, ran int64
		var posters sync.WaitGroup
		for i := 0; i < 8; i++ {
			posters.Add(1)
			go func() {
				defer posters.Done()
				for j := 0; j < 100; j++ {
					if loop.TryPost(func() { atomic.AddInt64(&ran, 1) }) {
						atomic.AddInt64(&accepted, 1)
					}
				}
			}()
		}
		loop.Close()
		posters.Wait()
		select {
		case err := <-runDone:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("loop did not stop")
		}
		assert.Equal(t, atomic.LoadInt64(&accepted), atomic.LoadInt64(&ran), "round %d", round)
		assert.False(t, loop.TryPost(func() {}))
	}
}
