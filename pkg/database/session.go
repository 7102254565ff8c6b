package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/brt-intranet/backend/pkg/metrics"
)

// ErrNotConnected is returned for statements issued while the session has no
// live connection. Statements are never queued behind a reconnect.
var ErrNotConnected = errors.New("database: session not connected")

// SessionConfig configures a supervised single-connection session.
type SessionConfig struct {
	DSN                 string
	ReconnectDelay      time.Duration
	HealthCheckInterval time.Duration
}

// sessionConn is the subset of *pgx.Conn the session drives.
type sessionConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	IsClosed() bool
}

type dialFunc func(ctx context.Context, dsn string) (sessionConn, error)

// Session owns one long-lived connection. Statements run one at a time; a
// statement that leaves the connection closed, or a failed health check,
// hands the session to Run, which reconnects on a fixed delay.
type Session struct {
	cfg    SessionConfig
	logger *zap.Logger
	dial   dialFunc

	stmtMu  sync.Mutex // one statement (or open result set) at a time
	stateMu sync.RWMutex
	conn    sessionConn

	faults chan struct{}
}

// NewSession creates an unconnected session. Call Connect, then Run in its own goroutine.
func NewSession(cfg SessionConfig, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = 2 * time.Second
	}
	if cfg.HealthCheckInterval <= 0 {
		cfg.HealthCheckInterval = 30 * time.Second
	}
	return &Session{
		cfg:    cfg,
		logger: logger,
		dial:   dialPgx,
		faults: make(chan struct{}, 1),
	}
}

func dialPgx(ctx context.Context, dsn string) (sessionConn, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Connect establishes the first connection.
func (s *Session) Connect(ctx context.Context) error {
	conn, err := s.dial(ctx, s.cfg.DSN)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return fmt.Errorf("ping database: %w", err)
	}
	s.setConn(conn)
	s.logger.Info("PostgreSQL session established")
	return nil
}

// Connected reports whether a live connection is held.
func (s *Session) Connected() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.conn != nil && !s.conn.IsClosed()
}

// Run supervises the connection until ctx is done: periodic health checks and
// reconnection after faults.
func (s *Session) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.HealthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.faults:
			s.reconnect(ctx)
		case <-ticker.C:
			if err := s.ping(ctx); err != nil {
				s.logger.Warn("database health check failed", zap.Error(err))
				s.reconnect(ctx)
			}
		}
	}
}

// Close releases the connection.
func (s *Session) Close(ctx context.Context) error {
	s.stateMu.Lock()
	conn := s.conn
	s.conn = nil
	s.stateMu.Unlock()
	if conn == nil {
		return nil
	}
	s.stmtMu.Lock()
	defer s.stmtMu.Unlock()
	return conn.Close(ctx)
}

// Exec runs a statement that returns no rows.
func (s *Session) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	conn, err := s.acquire()
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	defer s.release(conn)
	return conn.Exec(ctx, sql, arguments...)
}

// Query runs a statement returning rows. The session stays busy until the rows
// are closed or fully read.
func (s *Session) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	conn, err := s.acquire()
	if err != nil {
		return nil, err
	}
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		s.release(conn)
		return nil, err
	}
	return &sessionRows{Rows: rows, done: func() { s.release(conn) }}, nil
}

// QueryRow runs a statement expected to return at most one row. The session is
// released when Scan is called.
func (s *Session) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	conn, err := s.acquire()
	if err != nil {
		return errRow{err: err}
	}
	return &sessionRow{Row: conn.QueryRow(ctx, sql, args...), done: func() { s.release(conn) }}
}

func (s *Session) acquire() (sessionConn, error) {
	if !s.Connected() {
		s.signalFault()
		return nil, ErrNotConnected
	}
	s.stmtMu.Lock()
	s.stateMu.RLock()
	conn := s.conn
	s.stateMu.RUnlock()
	if conn == nil || conn.IsClosed() {
		s.stmtMu.Unlock()
		s.signalFault()
		return nil, ErrNotConnected
	}
	return conn, nil
}

func (s *Session) release(conn sessionConn) {
	lost := conn.IsClosed()
	s.stmtMu.Unlock()
	if lost {
		s.logger.Warn("database connection lost")
		s.signalFault()
	}
}

func (s *Session) signalFault() {
	select {
	case s.faults <- struct{}{}:
	default:
	}
}

func (s *Session) ping(ctx context.Context) error {
	conn, err := s.acquire()
	if err != nil {
		return err
	}
	defer s.release(conn)
	return conn.Ping(ctx)
}

func (s *Session) setConn(conn sessionConn) {
	s.stateMu.Lock()
	s.conn = conn
	s.stateMu.Unlock()
}

func (s *Session) reconnect(ctx context.Context) {
	s.stateMu.Lock()
	old := s.conn
	s.conn = nil
	s.stateMu.Unlock()
	if old != nil {
		s.stmtMu.Lock()
		_ = old.Close(ctx)
		s.stmtMu.Unlock()
	}

	for attempt := 1; ; attempt++ {
		conn, err := s.dial(ctx, s.cfg.DSN)
		if err == nil {
			s.setConn(conn)
			// faults raised while we were down refer to the old connection
			select {
			case <-s.faults:
			default:
			}
			metrics.DBReconnects.Inc()
			s.logger.Info("database session re-established", zap.Int("attempt", attempt))
			return
		}
		s.logger.Warn("database reconnect failed", zap.Int("attempt", attempt), zap.Duration("retry_in", s.cfg.ReconnectDelay), zap.Error(err))

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.cfg.ReconnectDelay):
		}
	}
}

type sessionRows struct {
	pgx.Rows
	once sync.Once
	done func()
}

func (r *sessionRows) Next() bool {
	if r.Rows.Next() {
		return true
	}
	r.finish()
	return false
}

func (r *sessionRows) Close() {
	r.Rows.Close()
	r.finish()
}

func (r *sessionRows) finish() {
	r.once.Do(r.done)
}

type sessionRow struct {
	pgx.Row
	once sync.Once
	done func()
}

func (r *sessionRow) Scan(dest ...any) error {
	defer r.once.Do(r.done)
	return r.Row.Scan(dest...)
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
