package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/SscSPs/erp_ledger/internal/ledgerio"
	"github.com/SscSPs/erp_ledger/internal/utils/accounting"
)

// ErrRejected is returned when at least one entry fails validation.
var ErrRejected = errors.New("entries rejected")

func newValidateCommand() *cobra.Command {
	var linesPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check every entry in a lines CSV against the double-entry rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := ledgerio.ReadLinesFile(linesPath)
			if err != nil {
				return err
			}
			return runValidate(cmd.OutOrStdout(), entries)
		},
	}

	cmd.Flags().StringVar(&linesPath, "lines", "", "CSV with entry_id,account_id,debit,credit columns (required)")
	_ = cmd.MarkFlagRequired("lines")

	return cmd
}

func runValidate(w io.Writer, entries []ledgerio.Entry) error {
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)

	var rejected int
	for _, e := range entries {
		accepted, err := accounting.ValidateEntry(e.Lines)
		if err != nil {
			rejected++
			bad.Fprintf(w, "FAIL %s: %v\n", e.EntryID, err)
			continue
		}
		ok.Fprintf(w, "OK   %s: %d lines, %s\n", e.EntryID, len(accepted.Lines), accepted.TotalDebits.StringFixed(2))
	}

	fmt.Fprintf(w, "%d entries, %d rejected\n", len(entries), rejected)
	if rejected > 0 {
		return fmt.Errorf("%w: %d of %d", ErrRejected, rejected, len(entries))
	}
	return nil
}
