package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"tradingapp/internal/adapter"
	"tradingapp/internal/identity"
)

type createTraderCmd struct{}

func (*createTraderCmd) Name() string     { return "createtrader" }
func (*createTraderCmd) Synopsis() string { return "register a user and its trader account" }
func (*createTraderCmd) Usage() string {
	return `tradectl createtrader <username>

  Prints the trader id and the API token.
`
}

func (*createTraderCmd) SetFlags(*flag.FlagSet) {}

func (*createTraderCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: username is required.")
		return subcommands.ExitUsageError
	}

	e, err := openEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer e.Close()

	user, trader, err := identity.NewProvider(e.repo, e.cfg.Identity).Register(ctx, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating trader: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("trader=%d username=%s balance=%s token=%s\n",
		trader.ID, user.Username, adapter.FormatMoney(trader.Balance, e.cfg.Currency), user.Token)
	return subcommands.ExitSuccess
}
