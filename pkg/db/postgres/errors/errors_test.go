package errors_test

import (
	"errors"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	kdb "github.com/pantrylab/cookbookd/pkg/db"
	kpgerr "github.com/pantrylab/cookbookd/pkg/db/postgres/errors"
)

func TestMissing(t *testing.T) {
	t.Run("it unwraps to ErrMissing", func(t *testing.T) {
		testee := kpgerr.Missing{Table: "recipe", Identity: "id=42"}
		if !errors.Is(testee, kdb.ErrMissing) {
			t.Error("Missing should match ErrMissing")
		}
	})
}

func TestTooMuch(t *testing.T) {
	t.Run("it unwraps to ErrTooMuch", func(t *testing.T) {
		testee := kpgerr.TooMuch{Table: "account", Identity: "email=x@example.com", Expected: 1}
		if !errors.Is(testee, kdb.ErrTooMuch) {
			t.Error("TooMuch should match ErrTooMuch")
		}
	})
}

func TestConflict(t *testing.T) {
	t.Run("it unwraps to ErrConflict", func(t *testing.T) {
		testee := kpgerr.Conflict{Table: "tag", Identity: `name="Vegan"`}
		if !errors.Is(testee, kdb.ErrConflict) {
			t.Error("Conflict should match ErrConflict")
		}
	})
}

func TestAsConflict(t *testing.T) {
	t.Run("it converts unique violations", func(t *testing.T) {
		cause := &pgconn.PgError{
			Code: pgerrcode.UniqueViolation, TableName: "account",
		}
		actual := kpgerr.AsConflict(cause, "email=x@example.com")
		if !errors.Is(actual, kdb.ErrConflict) {
			t.Error("unique violation should become ErrConflict")
		}
	})

	t.Run("it passes through other errors", func(t *testing.T) {
		cause := errors.New("fake error")
		actual := kpgerr.AsConflict(cause, "whatever")
		if actual != cause {
			t.Error("(actual, expected) = ", actual, cause)
		}
	})
}
