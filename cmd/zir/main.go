package main

import (
	"context"
	"fmt"
	"os"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/zirlang/zir/zir"
	"github.com/zirlang/zir/zir/parser"
	"github.com/zirlang/zir/zir/render"
)

func main() {
	parseCmd := &cli.Command{
		Name:   "parse",
		Action: parseAct,
		Args:   cli.Args{},
	}

	renderCmd := &cli.Command{
		Name:   "render",
		Action: renderAct,
		Args:   cli.Args{},
	}

	roundtripCmd := &cli.Command{
		Name:   "roundtrip",
		Action: roundtripAct,
		Args:   cli.Args{},
	}

	app := &cli.Command{
		Name:        "zir",
		Description: "zir parses and renders the ZIR textual intermediate representation",
		Commands: []*cli.Command{
			parseCmd,
			renderCmd,
			roundtripCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func parseAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		mod, err := parseFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "parse %v", a)
		}

		fmt.Printf("%s: %d declarations, %d diagnostics\n", a, len(mod.Decls), len(mod.Errors))

		for _, e := range mod.Errors {
			fmt.Printf("  %d: %s\n", e.Offset, e.Msg)
		}
	}

	return nil
}

func renderAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		mod, err := parseFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "parse %v", a)
		}

		for _, e := range mod.Errors {
			fmt.Fprintf(os.Stderr, "%v: %d: %s\n", a, e.Offset, e.Msg)
		}

		out, err := render.String(mod)
		if err != nil {
			return errors.Wrap(err, "render %v", a)
		}

		fmt.Print(out)
	}

	return nil
}

func roundtripAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		mod, err := parseFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "parse %v", a)
		}

		for _, e := range mod.Errors {
			fmt.Fprintf(os.Stderr, "%v: %d: %s\n", a, e.Offset, e.Msg)
		}

		first, err := render.String(mod)
		if err != nil {
			return errors.Wrap(err, "render %v", a)
		}

		src := append([]byte(first), 0)

		mod2, err := parser.Parse(ctx, src)
		if err != nil {
			return errors.Wrap(err, "reparse %v", a)
		}

		for _, e := range mod2.Errors {
			fmt.Fprintf(os.Stderr, "%v (reparse): %d: %s\n", a, e.Offset, e.Msg)
		}

		second, err := render.String(mod2)
		if err != nil {
			return errors.Wrap(err, "re-render %v", a)
		}

		if first != second {
			return errors.New("%v: round-trip mismatch: render(parse(render(m))) != render(m)", a)
		}

		fmt.Printf("%s: round-trip OK (%d bytes)\n", a, len(second))
	}

	return nil
}

func parseFile(ctx context.Context, name string) (*zir.Module, error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	text = append(text, 0)

	return parser.Parse(ctx, text)
}
