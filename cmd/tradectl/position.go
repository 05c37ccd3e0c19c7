package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"tradingapp/internal/adapter"
	"tradingapp/internal/model"
	"tradingapp/internal/position"
	"tradingapp/internal/settlement"
)

type positionCmd struct {
	trader uint64
	stock  string
}

func (*positionCmd) Name() string     { return "position" }
func (*positionCmd) Synopsis() string { return "show a trader's position on a stock" }
func (*positionCmd) Usage() string {
	return `tradectl position -trader <id> -stock <name>
`
}

func (c *positionCmd) SetFlags(f *flag.FlagSet) {
	f.Uint64Var(&c.trader, "trader", 0, "Trader id")
	f.StringVar(&c.stock, "stock", "", "Stock name")
}

func (c *positionCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.trader == 0 || c.stock == "" {
		fmt.Fprintln(os.Stderr, "Error: -trader and -stock flags are required.")
		return subcommands.ExitUsageError
	}

	e, err := openEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer e.Close()

	pos, err := settlement.NewService(e.repo).Position(ctx, c.trader, c.stock)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading position: %v\n", err)
		return subcommands.ExitFailure
	}
	if pos == nil {
		fmt.Printf("trader %d holds no %s\n", c.trader, c.stock)
		return subcommands.ExitSuccess
	}
	printPosition(*pos, e.cfg.Currency)
	return subcommands.ExitSuccess
}

type positionsCmd struct {
	trader uint64
	out    string
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "export every position of a trader" }
func (*positionsCmd) Usage() string {
	return `tradectl positions -trader <id> [-out <file>]

  Prints the trader's positions. With -out the snapshot is also written as JSON.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.Uint64Var(&c.trader, "trader", 0, "Trader id")
	f.StringVar(&c.out, "out", "", "Snapshot output path")
}

func (c *positionsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.trader == 0 {
		fmt.Fprintln(os.Stderr, "Error: -trader flag is required.")
		return subcommands.ExitUsageError
	}

	e, err := openEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer e.Close()

	reducer, err := settlement.NewService(e.repo).Positions(ctx, c.trader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading positions: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, pos := range reducer.Positions() {
		printPosition(pos, e.cfg.Currency)
	}

	if c.out != "" {
		snap := reducer.Snapshot(c.trader)
		if err := position.WriteSnapshot(c.out, snap); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing snapshot: %v\n", err)
			return subcommands.ExitFailure
		}
		written, err := position.ReadSnapshot(c.out)
		if err == nil {
			err = position.CompareSnapshots(snap, written)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error verifying snapshot: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("snapshot written to %s\n", c.out)
	}
	return subcommands.ExitSuccess
}

func printPosition(p model.Position, currency string) {
	fmt.Printf("%-10s shares=%d invested=%s bought=%d/%s sold=%d/%s\n",
		p.StockName, p.NetShares, adapter.FormatMoney(p.NetInvested, currency),
		p.Buy.Shares, adapter.FormatMoney(p.Buy.Amount, currency),
		p.Sell.Shares, adapter.FormatMoney(p.Sell.Amount, currency))
}
