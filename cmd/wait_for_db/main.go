package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	kpg "github.com/pantrylab/cookbookd/pkg/db/postgres"
	"github.com/pantrylab/cookbookd/pkg/utils/try"
	"github.com/pantrylab/cookbookd/pkg/waitfor"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Host     string `flag:"host" help:"The host of the database."`
	Port     int    `flag:"port" help:"The port of the database."`
	User     string `flag:"user" help:"The user of the database."`
	Password string `flag:"pass" help:"The password of the database."`
	Database string `flag:"database" help:"The name of the database."`

	Timeout time.Duration `flag:"timeout" help:"Give up after this long. 0 means wait forever."`
}

func main() {
	logger := log.Default()
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt, os.Kill,
	)
	defer cancel()

	port := 5432
	if sp := os.Getenv("DB_PORT"); sp != "" {
		p, err := strconv.Atoi(sp)
		if err == nil {
			port = p
		}
	}

	cmd := try.To(flarc.NewCommand(
		"block until the database accepts connections",
		Flag{
			Host:     os.Getenv("DB_HOST"),
			Port:     port,
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Database: os.Getenv("DB_NAME"),
		},
		flarc.Args{},
		func(ctx context.Context, c flarc.Commandline[Flag], _ []any) error {
			flags := c.Flags()

			if 0 < flags.Timeout {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, flags.Timeout)
				defer cancel()
			}

			check := kpg.PingCheck(fmt.Sprintf(
				"postgres://%s:%s@%s:%d/%s",
				flags.User, flags.Password, flags.Host, flags.Port, flags.Database,
			))

			fmt.Fprintln(c.Stdout(), "Waiting for database...")
			_, err := waitfor.Ready(
				ctx, check, kpg.IsConnectionError,
				waitfor.WithNotify(func(int, error) {
					fmt.Fprintln(c.Stdout(), "Database unavailable, waiting 1 second...")
				}),
			)
			if errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("database did not come up within %s", flags.Timeout)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(c.Stdout(), "Database available!")
			return nil
		},
	)).OrFatal(logger)

	os.Exit(flarc.Run(ctx, cmd))
}
