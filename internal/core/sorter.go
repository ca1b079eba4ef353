package core

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/JonMunkholm/PriceSort/internal/logging"
)

// Result describes a completed sort run.
type Result struct {
	Input    string
	Output   string
	Rows     int
	Duration time.Duration
}

// Run loads input, sorts it, and writes the result to output.
//
// Nothing is written unless every row has a valid sort key. input and
// output are never open at the same time.
func Run(ctx context.Context, input, output string) (*Result, error) {
	start := time.Now()
	logger := logging.WithFields(ctx, "input", input, "output", output)

	list, err := LoadFile(input)
	if err != nil {
		return nil, err
	}
	logger.Debug("price list loaded", "rows", list.Len(), "crlf", list.CRLF)

	if err := list.Sort(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(input), err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("sort cancelled: %w", err)
	}

	if err := SaveFile(output, list); err != nil {
		return nil, err
	}

	res := &Result{
		Input:    input,
		Output:   output,
		Rows:     list.Len(),
		Duration: time.Since(start),
	}
	logger.Info("price list sorted", "rows", res.Rows, "duration_ms", res.Duration.Milliseconds())
	return res, nil
}

// LoadForLookup loads the price list at path for searching. Rows come
// back sorted when every row has a valid key. Otherwise the list keeps
// file order and the sort failure is logged, so one bad row does not
// take the search down. Load failures are still returned.
func LoadForLookup(ctx context.Context, path string) (*PriceList, error) {
	list, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := list.Sort(); err != nil {
		logging.WithFields(ctx, "input", path).Warn("price list not sorted, using file order",
			"error", err,
			"code", MapError(err).Code,
		)
	}
	return list, nil
}

// CompletionMessage is the notice printed after a successful run.
func CompletionMessage(output string) string {
	return fmt.Sprintf("並び替えが完了しました。'%s' を確認してください。", filepath.Base(output))
}
