// Package host provides the two deployment modes spec.md §5 requires
// the core to support without recompiling: one long-lived monitor for
// a whole process, and one short-lived monitor per request of a
// request/response host. A small map-keyed registry tracks running
// monitors by request id, and each monitor's consumer loop runs in a
// goroutine supervised with golang.org/x/sync/errgroup.
package host

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/icftl/icftl/monitor"
	"github.com/icftl/icftl/protocol"
	"github.com/icftl/icftl/spec"
	"golang.org/x/sync/errgroup"
)

// ProcessMonitor wraps a monitor.Monitor whose consumer loop runs for
// the lifetime of the host process.
type ProcessMonitor struct {
	Monitor *monitor.Monitor

	cancel context.CancelFunc
	group  *errgroup.Group
}

// StartProcess builds a Monitor for sp and starts its consumer loop
// in a supervised goroutine. Call Stop when the process is shutting
// down.
func StartProcess(sp *spec.Specification, eventBuffer int) *ProcessMonitor {
	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	m := monitor.New(sp, eventBuffer)
	g.Go(func() error { return m.Run(gctx) })

	return &ProcessMonitor{Monitor: m, cancel: cancel, group: g}
}

// Stop requests a final verdict snapshot, writes it to sink as JSON,
// and shuts down the consumer goroutine.
func (p *ProcessMonitor) Stop(ctx context.Context, sink io.Writer) error {
	snapshot, err := p.Monitor.Stop(ctx)
	if err != nil {
		p.cancel()
		_ = p.group.Wait()
		return err
	}
	if err := writeSnapshot(sink, snapshot); err != nil {
		p.cancel()
		_ = p.group.Wait()
		return err
	}
	p.cancel()
	return p.group.Wait()
}

// RequestHost runs one monitor per in-flight request, keyed by an
// opaque request id in a single map guarded by a mutex, since
// requests begin and end concurrently.
type RequestHost struct {
	mu       sync.Mutex
	active   map[string]*requestEntry
	newSpec  func() *spec.Specification
	eventCap int
}

type requestEntry struct {
	monitor *monitor.Monitor
	cancel  context.CancelFunc
	group   *errgroup.Group
}

// NewRequestHost builds a RequestHost. newSpec is called once per
// Begin, so independent requests never share a Specification's
// Constraint cache across goroutines in a way that would require
// synchronization (spec.Specification is immutable and read-only
// after construction, so sharing one instance across requests is
// also safe; newSpec exists for hosts that prefer to rebuild it).
func NewRequestHost(newSpec func() *spec.Specification, eventBuffer int) *RequestHost {
	return &RequestHost{
		active:   make(map[string]*requestEntry),
		newSpec:  newSpec,
		eventCap: eventBuffer,
	}
}

// Begin starts a fresh monitor for requestID and returns it for the
// request's instrumented code to emit triggers/measurements against.
func (h *RequestHost) Begin(requestID string) *monitor.Monitor {
	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	m := monitor.New(h.newSpec(), h.eventCap)
	g.Go(func() error { return m.Run(gctx) })

	h.mu.Lock()
	h.active[requestID] = &requestEntry{monitor: m, cancel: cancel, group: g}
	h.mu.Unlock()
	return m
}

// End stops requestID's monitor, writes its final verdict snapshot to
// sink as JSON, and forgets the request.
func (h *RequestHost) End(ctx context.Context, requestID string, sink io.Writer) error {
	h.mu.Lock()
	entry, ok := h.active[requestID]
	if ok {
		delete(h.active, requestID)
	}
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("host: no active monitor for request %q", requestID)
	}

	snapshot, err := entry.monitor.Stop(ctx)
	entry.cancel()
	waitErr := entry.group.Wait()
	if err != nil {
		return err
	}
	if waitErr != nil {
		return waitErr
	}
	return writeSnapshot(sink, snapshot)
}

func writeSnapshot(sink io.Writer, snapshot []monitor.BindingSnapshot) error {
	enc := json.NewEncoder(sink)
	return enc.Encode(protocol.FromSnapshot(snapshot))
}
