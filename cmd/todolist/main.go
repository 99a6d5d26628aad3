package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"todolist/internal/auth"
	"todolist/internal/cli"
	"todolist/internal/config"
	"todolist/internal/kv"
	"todolist/internal/kv/file"
	"todolist/internal/kv/memory"
	"todolist/internal/kv/mysql"
	"todolist/internal/kv/postgres"
	"todolist/internal/store"
)

func main() {
	cfg := config.Load()
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closer, err := openStorage(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "todolist: %v\n", err)
		os.Exit(1)
	}

	deps := cli.Deps{
		Auth:  auth.NewService(store.NewUsers(st), store.NewSessions(st)),
		Tasks: store.NewTasks(st),
	}

	err = cli.NewRootCommand(deps).ExecuteContext(ctx)
	if closer != nil {
		closer()
	}
	if err != nil {
		os.Exit(1)
	}
}

func openStorage(cfg config.Config) (kv.Storage, func(), error) {
	switch cfg.Backend {
	case config.BackendFile:
		fs, err := file.NewStore(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init file store: %w", err)
		}
		log.Printf("using file store in %s", fs.Dir())
		return fs, nil, nil
	case config.BackendMemory:
		log.Printf("using memory store")
		return memory.NewStore(), nil, nil
	case config.BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("postgres backend needs TODOLIST_DATABASE_URL or DATABASE_URL")
		}
		pg, err := postgres.NewStore(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init postgres store: %w", err)
		}
		log.Printf("using postgres store")
		return pg, pg.Close, nil
	case config.BackendMySQL:
		if cfg.MySQLDSN == "" {
			return nil, nil, fmt.Errorf("mysql backend needs TODOLIST_MYSQL_DSN")
		}
		my, err := mysql.NewStore(cfg.MySQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init mysql store: %w", err)
		}
		log.Printf("using mysql store")
		return my, func() { _ = my.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q (want file, memory, postgres or mysql)", cfg.Backend)
	}
}
