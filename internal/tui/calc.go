package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	calc "github.com/amirasaad/exrate/pkg/calculator"
	calcsvc "github.com/amirasaad/exrate/pkg/service/calculator"
	"github.com/google/uuid"
)

// SplitKeys turns a typed line into key labels. Whole words that name a key
// ("switch", "del", "clear") stay whole; anything else is split into
// characters, so "6*3=" is four keys.
func SplitKeys(line string) []string {
	var keys []string
	for _, word := range strings.Fields(line) {
		if _, err := calc.ParseKey(word); err == nil {
			keys = append(keys, word)
			continue
		}
		for _, r := range word {
			keys = append(keys, string(r))
		}
	}
	return keys
}

// RunCalculator reads key lines from in until EOF or "q", printing the
// calculator after each line. Bad keys and failed conversions are printed
// and the loop goes on.
func RunCalculator(ctx context.Context, svc *calcsvc.Service, id uuid.UUID, in io.Reader, out io.Writer) error {
	view, err := svc.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, RenderCalculator(view))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "q" || line == "quit" {
			break
		}
		if line == "" {
			continue
		}
		view, err := svc.Press(ctx, id, SplitKeys(line)...)
		if err != nil {
			fmt.Fprintln(out, RenderError(err))
			continue
		}
		fmt.Fprintln(out, RenderCalculator(view))
	}
	return scanner.Err()
}
