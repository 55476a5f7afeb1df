package commands

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
	"github.com/SscSPs/erp_ledger/internal/ledgerio"
	"github.com/SscSPs/erp_ledger/internal/utils/accounting"
)

type trialBalanceOptions struct {
	accountsPath string
	linesPath    string
	hideZero     bool
}

func newTrialBalanceCommand() *cobra.Command {
	var opts trialBalanceOptions

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Print the trial balance of a chart of accounts and its journal lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := ledgerio.ReadAccountsFile(opts.accountsPath)
			if err != nil {
				return err
			}
			entries, err := ledgerio.ReadLinesFile(opts.linesPath)
			if err != nil {
				return err
			}
			return runTrialBalance(cmd.OutOrStdout(), cmd.ErrOrStderr(), accounts, entries, opts.hideZero)
		},
	}

	cmd.Flags().StringVar(&opts.accountsPath, "accounts", "", "CSV with id,code,name,type columns (required)")
	cmd.Flags().StringVar(&opts.linesPath, "lines", "", "CSV with entry_id,account_id,debit,credit columns (required)")
	cmd.Flags().BoolVar(&opts.hideZero, "hide-zero", false, "omit accounts with a zero balance")
	_ = cmd.MarkFlagRequired("accounts")
	_ = cmd.MarkFlagRequired("lines")

	return cmd
}

// runTrialBalance posts only entries that pass validation; rejected entries
// and lines for unknown accounts are reported on stderr and left out.
func runTrialBalance(out, errOut io.Writer, accounts []domain.Account, entries []ledgerio.Entry, hideZero bool) error {
	warn := color.New(color.FgYellow)

	known := make(map[int]bool, len(accounts))
	for _, a := range accounts {
		known[a.AccountID] = true
	}

	var posted []domain.JournalLine
	for _, e := range entries {
		accepted, err := accounting.ValidateEntry(e.Lines)
		if err != nil {
			warn.Fprintf(errOut, "skipping entry %s: %v\n", e.EntryID, err)
			continue
		}
		for _, l := range accepted.Lines {
			if !known[l.AccountID] {
				warn.Fprintf(errOut, "entry %s: unknown account %d\n", e.EntryID, l.AccountID)
			}
		}
		posted = append(posted, accepted.Lines...)
	}

	sorted := slices.Clone(accounts)
	slices.SortFunc(sorted, func(a, b domain.Account) int { return cmp.Compare(a.Code, b.Code) })

	rows := accounting.ComputeTrialBalance(sorted, posted)
	if hideZero {
		rows = slices.DeleteFunc(rows, func(r domain.TrialBalanceRow) bool { return r.IsZero() })
	}
	totalDebits, totalCredits := accounting.SumTrialBalance(rows)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Code\tAccount\tType\tDebit\tCredit\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", r.AccountCode, r.AccountName, r.AccountType,
			blankIfZero(r.DebitBalance.StringFixed(2)), blankIfZero(r.CreditBalance.StringFixed(2)))
	}
	fmt.Fprintf(tw, "\tTotal\t\t%s\t%s\t\n", totalDebits.StringFixed(2), totalCredits.StringFixed(2))
	if err := tw.Flush(); err != nil {
		return err
	}

	if accounting.WithinTolerance(totalDebits, totalCredits) {
		color.New(color.FgGreen).Fprintln(out, "Balanced")
		return nil
	}
	color.New(color.FgRed).Fprintln(out, "NOT BALANCED")
	return fmt.Errorf("trial balance out by %s", totalDebits.Sub(totalCredits).Abs().StringFixed(2))
}

func blankIfZero(s string) string {
	if s == "0.00" {
		return ""
	}
	return s
}
