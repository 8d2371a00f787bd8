//nolint:wrapcheck
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/farcloser/primordium/format"
)

var errAssetsFailed = errors.New("assets failed")

// printEntries renders one entry per processed asset through the requested
// formatter.
func printEntries(entries []*format.Data, formatName string) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	return formatter.PrintAll(entries, os.Stdout)
}

// errorEntry keeps a failing asset in the rendered output next to the
// successful ones.
func errorEntry(filePath string, err error) *format.Data {
	return &format.Data{
		Object: filePath,
		Meta: map[string]any{
			"error": err.Error(),
		},
	}
}

// failedError turns per-asset failures into a non-zero exit after the whole
// queue has been reported.
func failedError(failed int) error {
	if failed == 0 {
		return nil
	}

	return fmt.Errorf("%d %w", failed, errAssetsFailed)
}
