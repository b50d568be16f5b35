package postgres

import (
	"context"
	"errors"
	"io"
	"net"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	"github.com/pantrylab/cookbookd/pkg/waitfor"
)

// PingCheck makes a waitfor.Check probing the database at url.
//
// Each attempt dials a fresh connection, pings it and disconnects,
// so a success means the database accepts connections right now.
func PingCheck(url string) waitfor.Check {
	return func(ctx context.Context) error {
		conn, err := pgx.Connect(ctx, url)
		if err != nil {
			return err
		}
		defer conn.Close(ctx)

		return conn.Ping(ctx)
	}
}

// IsConnectionError answers whether err means "the database is not up
// yet", rather than "the caller is wrong".
//
// true for failures at the network level (refused, reset, timed out)
// and for postgres declaring itself starting up or shutting down.
// false for everything else. Authentication failures above all: no
// amount of retrying fixes a wrong password.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case
			pgerrcode.CannotConnectNow,
			pgerrcode.AdminShutdown,
			pgerrcode.CrashShutdown,
			pgerrcode.TooManyConnections:
			return true
		case pgerrcode.InvalidCatalogName:
			// the database may not exist yet while the server runs
			// its bootstrap scripts.
			return true
		}
		return false
	}

	// the server side can drop the connection mid-handshake while
	// it boots.
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
