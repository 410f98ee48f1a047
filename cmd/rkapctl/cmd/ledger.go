package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/rkap/internal/balancesheet"
	bsStore "github.com/MrJamesThe3rd/rkap/internal/balancesheet/store"
	"github.com/MrJamesThe3rd/rkap/internal/report"
)

var errDrift = errors.New("balance drift detected")

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect balance sheet consistency",
}

var ledgerCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare every balance with its opening balance plus transaction history",
	Long: `check reports balance sheets whose stored balance differs from
their opening balance plus the sum of their transactions. Nothing is
repaired. The command exits non-zero when any drift is found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		drift, err := balancesheet.NewService(bsStore.New(db)).Check(cmd.Context())
		if err != nil {
			return err
		}

		return printDrift(cmd.OutOrStdout(), drift)
	},
}

func init() {
	ledgerCmd.AddCommand(ledgerCheckCmd)
}

func printDrift(w io.Writer, drift []balancesheet.Drift) error {
	if len(drift) == 0 {
		fmt.Fprintln(w, "all balance sheets match their history")
		return nil
	}

	for _, d := range drift {
		fmt.Fprintf(w, "%-24s balance %s expected %s difference %s\n",
			d.Name,
			report.FormatAmount(d.Balance),
			report.FormatAmount(d.Expected),
			report.FormatAmount(d.Difference()))
	}

	return fmt.Errorf("%w on %d sheet(s)", errDrift, len(drift))
}
