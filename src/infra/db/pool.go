package db

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultAcquireTimeout is how long Acquire waits for an idle connection.
const DefaultAcquireTimeout = 2 * time.Second

// DefaultPoolSize is used when a non-positive size is configured.
const DefaultPoolSize = 5

var (
	// ErrPoolExhausted is returned when no connection became available
	// within the acquire timeout.
	ErrPoolExhausted = errors.New("connection pool exhausted")

	// ErrConnectionCreation wraps factory failures.
	ErrConnectionCreation = errors.New("failed to create database connection")

	// ErrPoolClosed is returned by Acquire after Close.
	ErrPoolClosed = errors.New("connection pool closed")

	// errStaleConnection never leaves this package; a stale connection is
	// always replaced.
	errStaleConnection = errors.New("stale connection")
)

// Conn is a single live session to the backing store.
// *pgx.Conn satisfies it.
type Conn interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Factory opens a new connection.
type Factory[C Conn] func(ctx context.Context) (C, error)

// PoolOptions configures a Pool.
type PoolOptions struct {
	// Size is the maximum number of live connections (default: 5)
	Size int

	// AcquireTimeout bounds the wait for an idle connection (default: 2s)
	AcquireTimeout time.Duration

	Log *slog.Logger
}

// Stats is a point-in-time snapshot of the pool.
type Stats struct {
	Size      int   `json:"size"`
	Idle      int   `json:"idle"`
	Live      int   `json:"live"`
	Created   int64 `json:"created"`
	Replaced  int64 `json:"replaced"`
	Exhausted int64 `json:"exhausted"`
}

// Pool is a bounded set of connections handed out one per unit of work.
//
// Each connection is probed on checkout; a connection that fails the probe is
// closed and replaced before the caller sees it. Idle connections live in a
// buffered channel of capacity Size, so idle + checked out never exceeds Size.
type Pool[C Conn] struct {
	factory        Factory[C]
	size           int
	acquireTimeout time.Duration
	log            *slog.Logger

	idle chan C
	done chan struct{}

	// freed wakes waiters when a slot opens up without a connection
	// coming back to idle.
	freed chan struct{}

	// mu guards live and closed. Release holds it while enqueueing so that
	// Close never misses a connection returned concurrently.
	mu     sync.Mutex
	live   int
	closed bool

	created   atomic.Int64
	replaced  atomic.Int64
	exhausted atomic.Int64
}

// NewPool creates an empty pool. Call Initialize to populate it.
func NewPool[C Conn](factory Factory[C], opts PoolOptions) *Pool[C] {
	if opts.Size <= 0 {
		opts.Size = DefaultPoolSize
	}
	if opts.AcquireTimeout <= 0 {
		opts.AcquireTimeout = DefaultAcquireTimeout
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Pool[C]{
		factory:        factory,
		size:           opts.Size,
		acquireTimeout: opts.AcquireTimeout,
		log:            log,
		idle:           make(chan C, opts.Size),
		done:           make(chan struct{}),
		freed:          make(chan struct{}, opts.Size),
	}
}

// Initialize fills the pool with up to Size fresh connections and returns how
// many were created. It is a no-op when the pool already holds idle
// connections. A factory failure stops filling early without an error; the
// pool then starts smaller and grows on demand in Acquire.
func (p *Pool[C]) Initialize(ctx context.Context) int {
	if n := len(p.idle); n > 0 {
		p.log.Info("pool is already initialized", "idle", n)
		return 0
	}

	created := 0
	for i := 0; i < p.size; i++ {
		if !p.reserve() {
			break
		}
		conn, err := p.open(ctx)
		if err != nil {
			p.log.Warn("stopping pool initialization early", "created", created, "error", err)
			break
		}
		if !p.put(conn) {
			p.discard(conn)
			break
		}
		created++
	}

	p.log.Info("database connection pool initialized",
		"connections", len(p.idle),
		"size", p.size,
	)
	return created
}

// Acquire checks out a connection. The caller must hand it back with Release
// exactly once; prefer With, which does that on every exit path.
//
// It fails with ErrPoolExhausted when nothing became available within the
// acquire timeout, and with ErrConnectionCreation when a needed connection
// could not be opened. A connection that fails its liveness probe is replaced
// transparently. If ctx ends during the probe, the connection goes back to the
// pool untouched and ctx.Err() is returned.
func (p *Pool[C]) Acquire(ctx context.Context) (C, error) {
	var zero C

	conn, err := p.take(ctx)
	if err != nil {
		return zero, err
	}

	if err := conn.Ping(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			p.Release(conn)
			return zero, ctxErr
		}

		p.log.Warn("stale connection detected, closing and replacing",
			"error", fmt.Errorf("%w: %w", errStaleConnection, err),
		)
		// The replacement inherits the stale connection's slot.
		p.closeKeepSlot(conn)
		p.replaced.Add(1)

		fresh, err := p.open(ctx)
		if err != nil {
			p.log.Error("could not replace stale connection", "error", err)
			return zero, err
		}
		return fresh, nil
	}

	return conn, nil
}

// Release returns a checked-out connection. After Close it is closed instead.
// A connection that does not fit in the idle set was never counted by this
// pool, since every counted connection has room there; it is closed as
// surplus without touching the live count.
func (p *Pool[C]) Release(conn C) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.discard(conn)
		return
	}
	select {
	case p.idle <- conn:
		p.mu.Unlock()
		return
	default:
	}
	p.mu.Unlock()

	p.log.Warn("connection pool is full, closing surplus connection")
	p.closeKeepSlot(conn)
}

// With runs fn with a checked-out connection and always releases it, even if
// fn returns an error or panics.
func (p *Pool[C]) With(ctx context.Context, fn func(conn C) error) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer p.Release(conn)

	return fn(conn)
}

// Close drains and closes every idle connection. Close errors are logged, not
// returned. Connections still checked out are closed when released.
func (p *Pool[C]) Close(ctx context.Context) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.done)
	p.mu.Unlock()

	closed := 0
	for {
		select {
		case conn := <-p.idle:
			p.closeConn(ctx, conn)
			closed++
		default:
			p.log.Info("database connection pool gracefully closed", "closed", closed)
			return
		}
	}
}

// Idle returns the number of idle connections.
func (p *Pool[C]) Idle() int {
	return len(p.idle)
}

// Size returns the configured capacity.
func (p *Pool[C]) Size() int {
	return p.size
}

// Stats returns a snapshot of the pool counters.
func (p *Pool[C]) Stats() Stats {
	p.mu.Lock()
	live := p.live
	p.mu.Unlock()

	return Stats{
		Size:      p.size,
		Idle:      len(p.idle),
		Live:      live,
		Created:   p.created.Load(),
		Replaced:  p.replaced.Load(),
		Exhausted: p.exhausted.Load(),
	}
}

// take returns an idle connection, opens one while under capacity, or waits
// for a release until the acquire timeout.
func (p *Pool[C]) take(ctx context.Context) (C, error) {
	var zero C

	select {
	case <-p.done:
		return zero, ErrPoolClosed
	default:
	}

	select {
	case conn := <-p.idle:
		return conn, nil
	default:
	}

	if p.reserve() {
		return p.open(ctx)
	}

	timer := time.NewTimer(p.acquireTimeout)
	defer timer.Stop()

	for {
		select {
		case conn := <-p.idle:
			return conn, nil
		case <-p.freed:
			if p.reserve() {
				return p.open(ctx)
			}
		case <-timer.C:
			p.exhausted.Add(1)
			p.log.Error("could not get a database connection from the pool, timeout exceeded",
				"timeout", p.acquireTimeout,
				"size", p.size,
			)
			return zero, ErrPoolExhausted
		case <-p.done:
			return zero, ErrPoolClosed
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

// reserve claims a slot for a new connection while under capacity.
func (p *Pool[C]) reserve() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.live >= p.size {
		return false
	}
	p.live++
	return true
}

// open calls the factory for an already reserved slot and gives the slot
// back on failure.
func (p *Pool[C]) open(ctx context.Context) (C, error) {
	var zero C

	conn, err := p.factory(ctx)
	if err != nil {
		p.freeSlot()
		return zero, fmt.Errorf("%w: %w", ErrConnectionCreation, err)
	}

	p.created.Add(1)
	p.log.Debug("database connection created")
	return conn, nil
}

// put enqueues without blocking.
func (p *Pool[C]) put(conn C) bool {
	select {
	case p.idle <- conn:
		return true
	default:
		return false
	}
}

// discard closes a counted connection that leaves the pool for good.
func (p *Pool[C]) discard(conn C) {
	ctx, cancel := context.WithTimeout(context.Background(), p.acquireTimeout)
	defer cancel()
	p.closeConn(ctx, conn)
}

func (p *Pool[C]) closeConn(ctx context.Context, conn C) {
	p.freeSlot()
	p.closeQuietly(ctx, conn)
}

// closeKeepSlot closes conn without giving its slot back: either the slot is
// about to be reused, or conn never held one.
func (p *Pool[C]) closeKeepSlot(conn C) {
	ctx, cancel := context.WithTimeout(context.Background(), p.acquireTimeout)
	defer cancel()
	p.closeQuietly(ctx, conn)
}

func (p *Pool[C]) closeQuietly(ctx context.Context, conn C) {
	if err := conn.Close(ctx); err != nil {
		p.log.Warn("error closing database connection", "error", err)
	}
}

// freeSlot gives a slot back and wakes one waiter, if any.
func (p *Pool[C]) freeSlot() {
	p.mu.Lock()
	p.live--
	p.mu.Unlock()

	select {
	case p.freed <- struct{}{}:
	default:
	}
}
