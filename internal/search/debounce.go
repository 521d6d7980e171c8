// Package search содержит отложенный запуск пересчёта поисковой выдачи.
package search

import (
	"sync"
	"time"
)

// DefaultDelay — период тишины после последнего ввода перед пересчётом выдачи.
const DefaultDelay = 300 * time.Millisecond

// Debouncer откладывает выполнение функции на заданный период тишины.
// Новый вызов Trigger отменяет ещё не сработавший предыдущий, поэтому в любой
// момент ожидает выполнения не более одной функции — последней переданной.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer создаёт дебаунсер с указанной задержкой.
// Нулевая и отрицательная задержка заменяются значением по умолчанию.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

// Trigger планирует выполнение fn после периода тишины, отменяя ранее
// запланированный вызов.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop отменяет запланированный вызов, если он есть.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
