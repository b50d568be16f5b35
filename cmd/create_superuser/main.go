package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"

	apiusers "github.com/pantrylab/cookbookd/pkg/api/types/users"
	"github.com/pantrylab/cookbookd/pkg/auth"
	kdb "github.com/pantrylab/cookbookd/pkg/db"
	"github.com/pantrylab/cookbookd/pkg/db/postgres"
	"github.com/pantrylab/cookbookd/pkg/utils/try"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Host     string `flag:"host" help:"The host of the database."`
	Port     int    `flag:"port" help:"The port of the database."`
	User     string `flag:"user" help:"The user of the database."`
	Password string `flag:"pass" help:"The password of the database."`
	Database string `flag:"database" help:"The name of the database."`

	Email        string `flag:"email" help:"The email address of the new superuser."`
	UserPassword string `flag:"password" help:"The password of the new superuser."`
	Name         string `flag:"name" help:"The display name of the new superuser."`
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
		"create an account with staff and superuser rights",
		Flag{
			Host:     os.Getenv("DB_HOST"),
			Port:     port,
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Database: os.Getenv("DB_NAME"),

			Email:        os.Getenv("COOKBOOKD_SUPERUSER_EMAIL"),
			UserPassword: os.Getenv("COOKBOOKD_SUPERUSER_PASSWORD"),
			Name:         os.Getenv("COOKBOOKD_SUPERUSER_NAME"),
		},
		flarc.Args{},
		func(ctx context.Context, c flarc.Commandline[Flag], _ []any) error {
			flags := c.Flags()

			if flags.Email == "" {
				return fmt.Errorf(
					"%w: flag `--email` (or, envvar COOKBOOKD_SUPERUSER_EMAIL) is required", flarc.ErrUsage,
				)
			}
			if len(flags.UserPassword) < apiusers.PasswordMinLength {
				return fmt.Errorf(
					"%w: flag `--password` (or, envvar COOKBOOKD_SUPERUSER_PASSWORD) needs %d characters or more",
					flarc.ErrUsage, apiusers.PasswordMinLength,
				)
			}

			hash, err := auth.HashPassword(flags.UserPassword)
			if err != nil {
				return err
			}

			db, err := postgres.New(
				ctx,
				fmt.Sprintf(
					"postgres://%s:%s@%s:%d/%s",
					flags.User, flags.Password, flags.Host, flags.Port, flags.Database,
				),
			)
			if err != nil {
				return err
			}
			defer db.Close()

			created, err := db.Users().RegisterSuperuser(ctx, kdb.UserParam{
				Email:        flags.Email,
				Name:         flags.Name,
				PasswordHash: hash,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Stdout(), "superuser %s (id: %d) is created.\n", created.Email, created.Id)
			return nil
		},
	)).OrFatal(logger)

	os.Exit(flarc.Run(ctx, cmd))
}
