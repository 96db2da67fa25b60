package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of goroutines that executes batches of
// independent tasks.
//
// Every worker owns a queue. Tasks are dealt round-robin onto the queues and
// an idle worker steals from its neighbours, so a few slow tiles near the
// set boundary do not leave the rest of the pool waiting.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int

	// queues holds one buffered task queue per worker.
	queues []chan func()

	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]

	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case task := <-own:
			run(task)
		default:
			if task := p.steal(id); task != nil {
				task()
				continue
			}
			select {
			case <-p.done:
				p.drain(own)
				return
			case task := <-own:
				run(task)
			}
		}
	}
}

func run(task func()) {
	if task != nil {
		task()
	}
}

// drain runs whatever is left in a queue after Close.
func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case task := <-queue:
			run(task)
		default:
			return
		}
	}
}

// steal takes one task from any other worker's queue, or returns nil.
func (p *WorkerPool) steal(self int) func() {
	for i := range p.workers {
		if i == self {
			continue
		}
		select {
		case task := <-p.queues[i]:
			return task
		default:
		}
	}
	return nil
}

// ExecuteAll runs every task and blocks until all of them have returned.
// It is the join point of a parallel pass: writes made by the tasks are
// visible to the caller once ExecuteAll returns.
//
// ExecuteAll reports false without running anything if the pool is closed.
func (p *WorkerPool) ExecuteAll(tasks []func()) bool {
	if !p.running.Load() {
		return false
	}
	if len(tasks) == 0 {
		return true
	}

	var pending sync.WaitGroup
	pending.Add(len(tasks))

	for i, fn := range tasks {
		task := func() {
			defer pending.Done()
			fn()
		}

		select {
		case p.queues[i%p.workers] <- task:
		case <-p.done:
			// Closed mid-batch; the remaining tasks run on the caller so
			// the batch still completes.
			task()
		}
	}

	// A task enqueued while Close was draining may have missed its worker.
	if !p.running.Load() {
		for _, q := range p.queues {
			p.drain(q)
		}
	}

	pending.Wait()
	return true
}

// Close stops the workers after the queued tasks have run.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
