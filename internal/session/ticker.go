package session

import (
	"sync"
	"time"
)

// Ticker delivers periodic ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a Ticker firing every d.
type TickerFactory func(d time.Duration) Ticker

type stdTicker struct {
	t *time.Ticker
}

func (s stdTicker) C() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()               { s.t.Stop() }

// NewStdTicker is the default TickerFactory backed by time.NewTicker.
func NewStdTicker(d time.Duration) Ticker {
	return stdTicker{t: time.NewTicker(d)}
}

// task is one live periodic callback. It owns its ticker and goroutine; both
// are released by cancel, which may be called any number of times.
type task struct {
	stop chan struct{}
	once sync.Once
}

// startTask runs onTick for every tick of t until the task is cancelled.
// wg tracks the goroutine so the owner can wait for it on teardown.
func startTask(t Ticker, wg *sync.WaitGroup, onTick func(*task)) *task {
	tk := &task{stop: make(chan struct{})}
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer t.Stop()
		for {
			select {
			case <-tk.stop:
				return
			case <-t.C():
				select {
				case <-tk.stop:
					return
				default:
				}
				onTick(tk)
			}
		}
	}()
	return tk
}

func (t *task) cancel() {
	if t == nil {
		return
	}
	t.once.Do(func() { close(t.stop) })
}
