package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"

	"tradingapp/internal/adapter"
	"tradingapp/internal/catalog"
	"tradingapp/internal/model"
)

type createStockCmd struct{}

func (*createStockCmd) Name() string     { return "createstock" }
func (*createStockCmd) Synopsis() string { return "add a stock to the catalog" }
func (*createStockCmd) Usage() string {
	return `tradectl createstock <name> <price> [<quantity>]

  Adds a stock. The quantity defaults to 100.
`
}

func (*createStockCmd) SetFlags(*flag.FlagSet) {}

func (*createStockCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name, price, quantity, err := parseStockArgs(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	e, err := openEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer e.Close()

	stock, err := catalog.New(e.repo).CreateStock(ctx, name, price, quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating stock: %v\n", err)
		return subcommands.ExitFailure
	}
	printStock(stock, e.cfg.Currency)
	return subcommands.ExitSuccess
}

type setPriceCmd struct{}

func (*setPriceCmd) Name() string     { return "setprice" }
func (*setPriceCmd) Synopsis() string { return "set the price of a stock" }
func (*setPriceCmd) Usage() string {
	return `tradectl setprice <name> <price>
`
}

func (*setPriceCmd) SetFlags(*flag.FlagSet) {}

func (*setPriceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: name and price are required.")
		return subcommands.ExitUsageError
	}
	price, err := decimal.NewFromString(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
		return subcommands.ExitUsageError
	}

	e, err := openEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer e.Close()

	stock, err := catalog.New(e.repo).UpdatePrice(ctx, f.Arg(0), price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error updating price: %v\n", err)
		return subcommands.ExitFailure
	}
	printStock(stock, e.cfg.Currency)
	return subcommands.ExitSuccess
}

func parseStockArgs(args []string) (string, decimal.Decimal, *int64, error) {
	if len(args) < 2 || len(args) > 3 {
		return "", decimal.Decimal{}, nil, errors.Errorf("expected <name> <price> [<quantity>], got %d arguments", len(args))
	}
	price, err := decimal.NewFromString(args[1])
	if err != nil {
		return "", decimal.Decimal{}, nil, errors.Wrapf(err, "parse price %q", args[1])
	}
	if len(args) == 2 {
		return args[0], price, nil, nil
	}
	quantity, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return "", decimal.Decimal{}, nil, errors.Wrapf(err, "parse quantity %q", args[2])
	}
	return args[0], price, &quantity, nil
}

func printStock(stock model.Stock, currency string) {
	fmt.Printf("%-10s price=%s quantity=%d\n", stock.Name, adapter.FormatMoney(stock.Price, currency), stock.Quantity)
}
