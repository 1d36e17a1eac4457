package structlog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"
)

const (
	queueSize      = 1024
	connectTimeout = 5 * time.Second
	requestTimeout = 10 * time.Second
)

// forwarder ships envelope payloads to the collector from a single
// background goroutine. Enqueueing never blocks the emitting caller: when
// the queue is full the payload is dropped with a warning. Each payload
// gets exactly one delivery attempt; failures are reported once on the
// warning stream and the payload is discarded.
type forwarder struct {
	endpoint string
	client   *http.Client
	queue    chan []byte
	flush    chan chan struct{}
	done     chan struct{}
	once     sync.Once
	wg       sync.WaitGroup

	warnMu sync.Mutex
	warnw  io.Writer
}

func newForwarder(endpoint string, warnw io.Writer) *forwarder {
	f := &forwarder{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
			},
		},
		queue: make(chan []byte, queueSize),
		flush: make(chan chan struct{}),
		done:  make(chan struct{}),
		warnw: warnw,
	}
	f.wg.Add(1)
	go f.runLoop()
	return f
}

// enqueue hands a payload to the forwarder goroutine without blocking.
func (f *forwarder) enqueue(payload []byte) {
	select {
	case f.queue <- payload:
	default:
		f.warnf("structlog: delivery queue full, dropping record\n")
	}
}

func (f *forwarder) runLoop() {
	defer f.wg.Done()
	for {
		select {
		case payload := <-f.queue:
			f.send(payload)
		case ack := <-f.flush:
			f.drain()
			close(ack)
		case <-f.done:
			f.drain()
			return
		}
	}
}

// drain delivers everything queued so far.
func (f *forwarder) drain() {
	for {
		select {
		case payload := <-f.queue:
			f.send(payload)
		default:
			return
		}
	}
}

// send performs the single delivery attempt for one payload.
func (f *forwarder) send(payload []byte) {
	req, err := http.NewRequest(http.MethodPost, f.endpoint, bytes.NewReader(payload))
	if err != nil {
		f.warnf("structlog: remote delivery failed: %v\n", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		f.warnf("structlog: remote delivery failed: %v\n", err)
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.warnf("structlog: collector returned HTTP %d\n", resp.StatusCode)
	}
}

// flushQueued blocks until the payloads enqueued before the call have been
// attempted, or until ctx is done.
func (f *forwarder) flushQueued(ctx context.Context) error {
	ack := make(chan struct{})
	select {
	case f.flush <- ack:
	case <-f.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-ack:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close drains the queue and stops the forwarder goroutine. Safe to call
// more than once.
func (f *forwarder) close() {
	f.once.Do(func() {
		close(f.done)
	})
	f.wg.Wait()
}

func (f *forwarder) warnf(format string, args ...any) {
	f.warnMu.Lock()
	defer f.warnMu.Unlock()
	fmt.Fprintf(f.warnw, format, args...)
}
