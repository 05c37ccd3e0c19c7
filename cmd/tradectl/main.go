package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"tradingapp/internal/ops"
	"tradingapp/internal/repository/gormrepo"
	"tradingapp/pkg/conn"
)

var configPath = flag.String("config", "", "Path to JSON config")

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&migrateCmd{}, "database")
	subcommands.Register(&createStockCmd{}, "stocks")
	subcommands.Register(&setPriceCmd{}, "stocks")
	subcommands.Register(&createTraderCmd{}, "traders")
	subcommands.Register(&positionCmd{}, "traders")
	subcommands.Register(&positionsCmd{}, "traders")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}

// env is the opened configuration and database of one command run.
type env struct {
	cfg    ops.Loaded
	client *conn.Client
	repo   *gormrepo.Repository
}

func openEnv() (*env, error) {
	cfg, err := ops.Load(*configPath)
	if err != nil {
		return nil, err
	}
	client, err := conn.New(cfg.Database)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, client: client, repo: gormrepo.New(client.DB())}, nil
}

func (e *env) Close() {
	_ = e.client.Close()
}
