package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pantrylab/cookbookd/pkg/auth"
	configs "github.com/pantrylab/cookbookd/pkg/configs/server"
	kpg "github.com/pantrylab/cookbookd/pkg/db/postgres"
	"github.com/pantrylab/cookbookd/pkg/utils/filewatch"
)

//go:embed openapi.yaml
var openapiDocument []byte

func main() {

	pconfig := flag.String(
		"config", os.Getenv("COOKBOOKD_CONFIG"), "path to config file",
	)
	schemaRepo := flag.String("schema-repo", os.Getenv("COOKBOOKD_SCHEMA"), "schema repository path")
	loglevel := flag.String("loglevel", "warn", "log level. debug|info|warn|error|off")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")

	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancel()

	conf, err := configs.LoadServerConfig(*pconfig)
	if err != nil {
		panic(err)
	}

	{
		// quit (to be restarted by the supervisor) when the config
		// file changes.
		ctx_, ccan, err := filewatch.UntilModifyContext(ctx, *pconfig)
		if err != nil {
			panic(err)
		}
		defer ccan()
		ctx = ctx_
	}

	db, err := kpg.New(ctx, conf.Database(), kpg.WithSchemaRepository(*schemaRepo))
	if err != nil {
		panic(err)
	}
	defer db.Close()
	{
		ctx_, ccan := db.Schema().Context(ctx)
		defer ccan()
		ctx = ctx_
	}

	tokens := auth.NewTokens([]byte(conf.Token().Secret()), conf.Token().TTL())

	server := BuildServer(db, tokens, conf.Media(), openapiDocument, *loglevel)
	for _, r := range server.Routes() {
		server.Logger.Debugf("- mount handler: %s %s", strings.ToUpper(r.Method), r.Path)
	}

	ch := make(chan error, 1)
	go func() {
		defer close(ch)

		addr := fmt.Sprintf(":%d", conf.Port())
		var err error
		if cert, key := *pcert, *pkey; cert != "" && key != "" {
			err = server.StartTLS(addr, cert, key)
		} else {
			err = server.Start(addr)
		}
		if err != nil && err != http.ErrServerClosed {
			ch <- err
			return
		}
		ch <- nil
	}()

	exit := 0
	select {
	case <-ctx.Done(): // wait
		if err := ctx.Err(); err != nil {
			server.Logger.Infof("context has been done: %s, cause: %s", err, context.Cause(ctx))
			exit = 1
		}
	case err := <-ch:
		if err != nil {
			server.Logger.Error("server stops with error:", err)
			exit = 1
		}
	}

	{
		server.Logger.Info("shutting down...")
		qctx, qcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer qcancel()

		if err := server.Shutdown(qctx); err != nil {
			server.Logger.Fatalf("Shutdown with error. %+v", err)
			os.Exit(1)
		}
		os.Exit(exit)
	}
}
