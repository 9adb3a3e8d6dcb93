package glob

import (
	"sync"
	"time"

	"go.trai.ch/zerr"
)

// Pool is a bounded worker pool shared by every glob cache in the process.
// Workers spawn on demand up to the limit and exit after sitting idle for
// the configured timeout, so a quiet build holds no threads.
type Pool struct {
	tasks chan func()
	idle  time.Duration

	mu      sync.Mutex
	workers int
	max     int
	closed  bool
}

// NewPool creates a pool running at most maxWorkers tasks concurrently.
// Idle workers are reclaimed after idleTimeout.
func NewPool(maxWorkers int, idleTimeout time.Duration) *Pool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Pool{
		tasks: make(chan func(), maxWorkers),
		idle:  idleTimeout,
		max:   maxWorkers,
	}
}

// Submit enqueues a task, growing the pool to its fixed size before letting
// tasks queue. It blocks when the queue is full and every worker is busy,
// which bounds the backlog an evaluation can build up.
func (p *Pool) Submit(task func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return zerr.New("worker pool is closed")
	}

	if p.workers < p.max {
		p.workers++
		go p.worker()
	}

	// The send happens under the same lock Close takes, so the channel
	// never closes under a blocked sender, and worker exit (also under
	// the lock) cannot strand a queued task.
	p.tasks <- task
	return nil
}

func (p *Pool) worker() {
	timer := time.NewTimer(p.idle)
	defer timer.Stop()
	for {
		select {
		case task, ok := <-p.tasks:
			if !ok {
				p.release()
				return
			}
			task()
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(p.idle)
		case <-timer.C:
			if p.exitIfIdle() {
				return
			}
			timer.Reset(p.idle)
		}
	}
}

// exitIfIdle retires the worker unless a task slipped into the queue while
// the idle timer was firing. A contended lock means a Submit is in progress,
// possibly blocked on the queue this worker serves, so the worker stays.
func (p *Pool) exitIfIdle() bool {
	if !p.mu.TryLock() {
		return false
	}
	defer p.mu.Unlock()
	if len(p.tasks) > 0 {
		return false
	}
	p.workers--
	return true
}

func (p *Pool) release() {
	p.mu.Lock()
	p.workers--
	p.mu.Unlock()
}

// Close stops accepting tasks and lets workers drain the queue and exit. It
// waits for any Submit blocked on a full queue before closing the channel.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.tasks)
}
