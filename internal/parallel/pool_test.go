package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		if pool.Workers() != runtime.GOMAXPROCS(0) {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", n, pool.Workers(), runtime.GOMAXPROCS(0))
		}
		pool.Close()
	}
}

func TestWorkerPool_ForEach(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	const n = 100
	results := make([]int, n)
	pool.ForEach(n, func(i int) {
		results[i] = i * i
	})

	for i, v := range results {
		if v != i*i {
			t.Errorf("results[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestWorkerPool_ForEachEmpty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	called := false
	pool.ForEach(0, func(int) { called = true })
	pool.ForEach(-1, func(int) { called = true })
	if called {
		t.Error("ForEach with n <= 0 should not call fn")
	}
}

func TestWorkerPool_ForEachAfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	var count atomic.Int64
	pool.ForEach(10, func(int) { count.Add(1) })
	if count.Load() != 10 {
		t.Errorf("count = %d, want 10 (serial fallback)", count.Load())
	}
}

func TestWorkerPool_CloseTwice(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()
	if pool.IsRunning() {
		t.Error("pool should not be running after Close")
	}
}

func TestWorkerPool_ManyRounds(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	var total atomic.Int64
	for round := 0; round < 50; round++ {
		pool.ForEach(17, func(int) { total.Add(1) })
	}
	if total.Load() != 50*17 {
		t.Errorf("total = %d, want %d", total.Load(), 50*17)
	}
}
