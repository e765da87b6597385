package telegram

import (
	"context"
	"sync"
)

// Incoming is one text message from a chat.
type Incoming struct {
	ChatID int64
	Text   string
}

// Dispatcher runs handle for every submitted message. Messages of one chat are handled
// one at a time in arrival order; different chats run in parallel. A chat's worker
// exits once its queue drains.
type Dispatcher struct {
	handle func(ctx context.Context, in Incoming)

	mu     sync.Mutex
	queues map[int64]*chatQueue
	wg     sync.WaitGroup
}

type queued struct {
	ctx context.Context
	in  Incoming
}

type chatQueue struct {
	pending []queued
}

func NewDispatcher(handle func(ctx context.Context, in Incoming)) *Dispatcher {
	return &Dispatcher{
		handle: handle,
		queues: map[int64]*chatQueue{},
	}
}

func (d *Dispatcher) Submit(ctx context.Context, in Incoming) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if q, ok := d.queues[in.ChatID]; ok {
		q.pending = append(q.pending, queued{ctx: ctx, in: in})
		return
	}
	q := &chatQueue{pending: []queued{{ctx: ctx, in: in}}}
	d.queues[in.ChatID] = q
	d.wg.Add(1)
	go d.work(in.ChatID, q)
}

func (d *Dispatcher) work(chatID int64, q *chatQueue) {
	defer d.wg.Done()
	for {
		d.mu.Lock()
		if len(q.pending) == 0 {
			delete(d.queues, chatID)
			d.mu.Unlock()
			return
		}
		item := q.pending[0]
		q.pending = q.pending[1:]
		d.mu.Unlock()
		d.handle(item.ctx, item.in)
	}
}

// Wait blocks until every submitted message has been handled.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
