package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/amirasaad/exrate/pkg/app"
	"github.com/amirasaad/exrate/pkg/currency"
	"github.com/amirasaad/exrate/pkg/i18n"
)

var ErrUsage = errors.New("usage")

const usage = `Usage: exrate <command> [arguments]
Commands:
  setup                     run the setup wizard
  board                     show watched currencies against the counter currency
  rates <from> [to]         show one rate or the whole table
  convert <from> <to> <amt> convert an amount
  calc [from] [to]          open the calculator (type keys, q to quit)
  lang [code]               show or set the language (en, ko, jp, cn)
  counter <code>            set the counter currency
  watch add|rm <code>       edit the watched list
  watch toggle <index>      flip a row's rate direction
  currencies [prefix]       list supported currencies`

// CLI runs one command against an App.
type CLI struct {
	App *app.App
	In  io.Reader
	Out io.Writer
}

// Run dispatches args (without the program name).
func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(c.Out, usage)
		return ErrUsage
	}
	prefs := c.App.Preferences
	lang := prefs.Language()

	switch cmd, rest := args[0], args[1:]; cmd {
	case "setup":
		return RunSetup(prefs, c.App.Deps.Locale, c.Out)
	case "board":
		snap := prefs.Snapshot()
		b, err := c.App.RatesService.Board(ctx, snap.CounterCurrency, snap.BaseCurrencies)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.Out, RenderBoard(b, lang))
	case "rates":
		switch len(rest) {
		case 1:
			table, err := c.App.RatesService.FetchAll(ctx, rest[0])
			if err != nil {
				return err
			}
			for _, cur := range currency.All() {
				if r, ok := table.Result[cur.Code]; ok {
					fmt.Fprintf(c.Out, "%s %s\n", codeStyle.Render(cur.Code), rateStyle.Render(strconv.FormatFloat(r, 'f', -1, 64)))
				}
			}
		case 2:
			q, err := c.App.RatesService.Quote(ctx, rest[0], rest[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(c.Out, "1 %s = %s %s\n", q.From, rateStyle.Render(strconv.FormatFloat(q.Rate, 'f', -1, 64)), q.To)
		default:
			return c.usage("rates <from> [to]")
		}
	case "convert":
		if len(rest) != 3 {
			return c.usage("convert <from> <to> <amount>")
		}
		conv, err := c.App.RatesService.Convert(ctx, rest[0], rest[1], rest[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Out, "%s %s = %s %s\n", conv.Amount, conv.From, rateStyle.Render(conv.Converted), conv.To)
	case "calc":
		snap := prefs.Snapshot()
		from, to := snap.CounterCurrency.Code, snap.CounterCurrency.Code
		if len(snap.BaseCurrencies) > 0 {
			from = snap.BaseCurrencies[0].Code
		}
		if len(rest) > 0 {
			from = rest[0]
		}
		if len(rest) > 1 {
			to = rest[1]
		}
		view, err := c.App.CalculatorService.Create(ctx, from, to)
		if err != nil {
			return err
		}
		defer c.App.CalculatorService.Delete(view.ID) //nolint:errcheck
		return RunCalculator(ctx, c.App.CalculatorService, view.ID, c.In, c.Out)
	case "lang":
		if len(rest) == 0 {
			fmt.Fprintf(c.Out, "%s: %s\n", i18n.T(lang, "language"), i18n.T(lang, i18n.LanguageName(lang)))
			return nil
		}
		if err := prefs.SetLanguage(rest[0]); err != nil {
			return err
		}
		lang = prefs.Language()
		fmt.Fprintf(c.Out, "%s: %s\n", i18n.T(lang, "language"), i18n.T(lang, i18n.LanguageName(lang)))
	case "counter":
		if len(rest) != 1 {
			return c.usage("counter <code>")
		}
		if err := prefs.SetCounter(currency.Currency{Code: rest[0]}); err != nil {
			return err
		}
		fmt.Fprintf(c.Out, "%s: %s\n", i18n.T(lang, "counter currency"), prefs.Counter().Code)
	case "watch":
		return c.watch(rest)
	case "currencies":
		prefix := ""
		if len(rest) > 0 {
			prefix = rest[0]
		}
		for _, cur := range currency.Search(prefix) {
			fmt.Fprintf(c.Out, "%s %s\n", codeStyle.Render(cur.Code), mutedStyle.Render(cur.Flag))
		}
	default:
		fmt.Fprintln(c.Out, usage)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
	return nil
}

func (c *CLI) watch(args []string) error {
	if len(args) != 2 {
		return c.usage("watch add|rm <code> | watch toggle <index>")
	}
	prefs := c.App.Preferences
	var err error
	switch args[0] {
	case "add":
		err = prefs.Add(currency.Currency{Code: args[1]})
	case "rm":
		err = prefs.Remove(args[1])
	case "toggle":
		i, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			return c.usage("watch toggle <index>")
		}
		err = prefs.ToggleSelected(i)
	default:
		return c.usage("watch add|rm <code> | watch toggle <index>")
	}
	if err != nil {
		return err
	}
	for i, w := range prefs.Snapshot().BaseCurrencies {
		marker := " "
		if w.IsSelected {
			marker = "•"
		}
		fmt.Fprintf(c.Out, "%2d %s %s\n", i, marker, w.Code)
	}
	return nil
}

func (c *CLI) usage(line string) error {
	fmt.Fprintln(c.Out, "Usage: exrate "+line)
	return ErrUsage
}
