package waitfor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pantrylab/cookbookd/pkg/waitfor"
)

// check failing with each error in sequence, then succeeding forever.
func failThenOk(errs ...error) waitfor.Check {
	i := 0
	return func(context.Context) error {
		if i < len(errs) {
			err := errs[i]
			i += 1
			return err
		}
		return nil
	}
}

// backoff counting how many delays are taken, without actually waiting.
func countingBackoff(counter *int) func(context.Context) error {
	return func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		*counter += 1
		return nil
	}
}

func retryAlways(error) bool { return true }

func TestReady(t *testing.T) {
	t.Run("when check is ready at once, it makes one attempt and no delay", func(t *testing.T) {
		ctx := context.Background()

		sleeps := 0
		notified := 0
		attempts, err := waitfor.Ready(
			ctx, failThenOk(), retryAlways,
			waitfor.WithBackoff(countingBackoff(&sleeps)),
			waitfor.WithNotify(func(int, error) { notified += 1 }),
		)

		if err != nil {
			t.Fatal(err)
		}
		if attempts != 1 {
			t.Errorf("attempts: (actual, expected) = (%d, %d)", attempts, 1)
		}
		if sleeps != 0 {
			t.Errorf("delays taken: (actual, expected) = (%d, %d)", sleeps, 0)
		}
		if notified != 0 {
			t.Errorf("notifications: (actual, expected) = (%d, %d)", notified, 0)
		}
	})

	t.Run("when check is ready at once, it returns promptly under default options", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		attempts, err := waitfor.Ready(ctx, failThenOk(), retryAlways)

		if err != nil {
			t.Fatal(err)
		}
		if attempts != 1 {
			t.Errorf("attempts: (actual, expected) = (%d, %d)", attempts, 1)
		}
	})

	t.Run("when check fails N times retryably, it attempts N+1 times with N delays", func(t *testing.T) {
		ctx := context.Background()
		cause := errors.New("connection refused")

		for _, n := range []int{1, 2, 5} {
			errs := make([]error, n)
			for i := range errs {
				errs[i] = cause
			}

			sleeps := 0
			notifiedAt := []int{}
			attempts, err := waitfor.Ready(
				ctx, failThenOk(errs...), retryAlways,
				waitfor.WithBackoff(countingBackoff(&sleeps)),
				waitfor.WithNotify(func(a int, cause error) {
					notifiedAt = append(notifiedAt, a)
				}),
			)

			if err != nil {
				t.Fatalf("n = %d: %v", n, err)
			}
			if attempts != n+1 {
				t.Errorf("n = %d: attempts: (actual, expected) = (%d, %d)", n, attempts, n+1)
			}
			if sleeps != n {
				t.Errorf("n = %d: delays taken: (actual, expected) = (%d, %d)", n, sleeps, n)
			}
			if len(notifiedAt) != n {
				t.Errorf("n = %d: notifications: (actual, expected) = (%d, %d)", n, len(notifiedAt), n)
			}
			for i, a := range notifiedAt {
				if a != i+1 {
					t.Errorf("n = %d: notified attempt number: (actual, expected) = (%d, %d)", n, a, i+1)
				}
			}
		}
	})

	t.Run("when check fails with mixed retryable causes then succeeds, each failure costs one attempt and one delay", func(t *testing.T) {
		ctx := context.Background()
		errA := errors.New("cause A")
		errB := errors.New("cause B")

		sleeps := 0
		attempts, err := waitfor.Ready(
			ctx,
			failThenOk(errA, errA, errB, errB, errB),
			retryAlways,
			waitfor.WithBackoff(countingBackoff(&sleeps)),
		)

		if err != nil {
			t.Fatal(err)
		}
		if attempts != 6 {
			t.Errorf("attempts: (actual, expected) = (%d, %d)", attempts, 6)
		}
		if sleeps != 5 {
			t.Errorf("delays taken: (actual, expected) = (%d, %d)", sleeps, 5)
		}
	})

	t.Run("when check fails non-retryably, the failure propagates at once", func(t *testing.T) {
		ctx := context.Background()
		fatal := errors.New("authentication failed")

		sleeps := 0
		notified := 0
		attempts, err := waitfor.Ready(
			ctx,
			failThenOk(fatal),
			func(error) bool { return false },
			waitfor.WithBackoff(countingBackoff(&sleeps)),
			waitfor.WithNotify(func(int, error) { notified += 1 }),
		)

		if !errors.Is(err, fatal) {
			t.Errorf("error: (actual, expected) = (%v, %v)", err, fatal)
		}
		if attempts != 1 {
			t.Errorf("attempts: (actual, expected) = (%d, %d)", attempts, 1)
		}
		if sleeps != 0 {
			t.Errorf("delays taken: (actual, expected) = (%d, %d)", sleeps, 0)
		}
		if notified != 0 {
			t.Errorf("notifications: (actual, expected) = (%d, %d)", notified, 0)
		}
	})

	t.Run("the predicate decides per cause, not per attempt", func(t *testing.T) {
		ctx := context.Background()
		transient := errors.New("connection refused")
		fatal := errors.New("password authentication failed")

		sleeps := 0
		attempts, err := waitfor.Ready(
			ctx,
			failThenOk(transient, transient, fatal),
			func(err error) bool { return errors.Is(err, transient) },
			waitfor.WithBackoff(countingBackoff(&sleeps)),
		)

		if !errors.Is(err, fatal) {
			t.Errorf("error: (actual, expected) = (%v, %v)", err, fatal)
		}
		if attempts != 3 {
			t.Errorf("attempts: (actual, expected) = (%d, %d)", attempts, 3)
		}
		if sleeps != 2 {
			t.Errorf("delays taken: (actual, expected) = (%d, %d)", sleeps, 2)
		}
	})

	t.Run("when WithMaxAttempts is exhausted, it gives up with ErrNotReady wrapping the last cause", func(t *testing.T) {
		ctx := context.Background()
		cause := errors.New("connection refused")

		sleeps := 0
		notified := 0
		attempts, err := waitfor.Ready(
			ctx,
			func(context.Context) error { return cause },
			retryAlways,
			waitfor.WithMaxAttempts(3),
			waitfor.WithBackoff(countingBackoff(&sleeps)),
			waitfor.WithNotify(func(int, error) { notified += 1 }),
		)

		if !errors.Is(err, waitfor.ErrNotReady) {
			t.Errorf("error does not match ErrNotReady: %v", err)
		}
		if !errors.Is(err, cause) {
			t.Errorf("error does not match the last cause: %v", err)
		}
		if attempts != 3 {
			t.Errorf("attempts: (actual, expected) = (%d, %d)", attempts, 3)
		}
		if sleeps != 2 {
			t.Errorf("delays taken: (actual, expected) = (%d, %d)", sleeps, 2)
		}
		if notified != 2 {
			t.Errorf("notifications: (actual, expected) = (%d, %d)", notified, 2)
		}
	})

	t.Run("when WithMaxAttempts is not reached, it succeeds as usual", func(t *testing.T) {
		ctx := context.Background()
		cause := errors.New("connection refused")

		sleeps := 0
		attempts, err := waitfor.Ready(
			ctx,
			failThenOk(cause, cause),
			retryAlways,
			waitfor.WithMaxAttempts(5),
			waitfor.WithBackoff(countingBackoff(&sleeps)),
		)

		if err != nil {
			t.Fatal(err)
		}
		if attempts != 3 {
			t.Errorf("attempts: (actual, expected) = (%d, %d)", attempts, 3)
		}
	})

	t.Run("when context has been done before starting, it makes no attempt", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		checked := 0
		attempts, err := waitfor.Ready(
			ctx,
			func(context.Context) error { checked += 1; return nil },
			retryAlways,
		)

		if !errors.Is(err, context.Canceled) {
			t.Errorf("error: (actual, expected) = (%v, %v)", err, context.Canceled)
		}
		if attempts != 0 {
			t.Errorf("attempts: (actual, expected) = (%d, %d)", attempts, 0)
		}
		if checked != 0 {
			t.Errorf("check called %d times for a dead context", checked)
		}
	})

	t.Run("when context is canceled while waiting, it stops with ctx.Err()", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		cause := errors.New("connection refused")
		attempts, err := waitfor.Ready(
			ctx,
			func(context.Context) error { return cause },
			retryAlways,
			waitfor.WithBackoff(func(ctx context.Context) error {
				cancel()
				<-ctx.Done()
				return ctx.Err()
			}),
		)

		if !errors.Is(err, context.Canceled) {
			t.Errorf("error: (actual, expected) = (%v, %v)", err, context.Canceled)
		}
		if attempts != 1 {
			t.Errorf("attempts: (actual, expected) = (%d, %d)", attempts, 1)
		}
	})

	t.Run("calling it again starts from scratch", func(t *testing.T) {
		ctx := context.Background()
		cause := errors.New("connection refused")

		for round := 0; round < 2; round++ {
			sleeps := 0
			attempts, err := waitfor.Ready(
				ctx,
				failThenOk(cause, cause),
				retryAlways,
				waitfor.WithBackoff(countingBackoff(&sleeps)),
			)

			if err != nil {
				t.Fatalf("round %d: %v", round, err)
			}
			if attempts != 3 {
				t.Errorf("round %d: attempts: (actual, expected) = (%d, %d)", round, attempts, 3)
			}
			if sleeps != 2 {
				t.Errorf("round %d: delays taken: (actual, expected) = (%d, %d)", round, sleeps, 2)
			}
		}
	})
}
