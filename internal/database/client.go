// Package database provides the postgres client used to apply bootstrap
// SQL. Connections are one-shot: open, run the batches, close. There is no
// pooling; a bootstrap is a single short-lived workflow.
package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/RevCBH/pgbox/internal/bootstrap"
)

// pgConn is the subset of *pgx.Conn used here, so tests can inject a fake
// without standing up a real database
type pgConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Close(ctx context.Context) error
}

// Client opens connections to the bootstrapped database. It implements
// bootstrap.Database.
type Client struct {
	connect func(ctx context.Context, dsn string) (pgConn, error)
}

// Verify Client satisfies the orchestrator surface
var _ bootstrap.Database = (*Client)(nil)

// NewClient creates a Client backed by pgx
func NewClient() *Client {
	return &Client{connect: realConnect}
}

// Connect opens a single connection to dsn
func (c *Client) Connect(ctx context.Context, dsn string) (bootstrap.Session, error) {
	conn, err := c.connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &session{conn: conn}, nil
}

func realConnect(ctx context.Context, dsn string) (pgConn, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// session is one open connection
type session struct {
	conn pgConn
}

// BatchExecute submits the whole script in one call. Exec without bind
// arguments goes through the simple query protocol, so the script may
// contain multiple statements separated by semicolons.
func (s *session) BatchExecute(ctx context.Context, sql string) error {
	_, err := s.conn.Exec(ctx, sql)
	return err
}

// Close closes the underlying connection
func (s *session) Close(ctx context.Context) error {
	return s.conn.Close(ctx)
}
