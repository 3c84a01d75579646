package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/messmate/internal/export"
	"github.com/magabrotheeeer/messmate/internal/ledger"
)

func newAlertsCommand(load loadFunc, now func() time.Time) *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "Show renewal and pending payment alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := load(cmd)
			if err != nil {
				return err
			}
			alerts := ledger.New(ledger.WithClock(now)).Alerts(st)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "RENEWALS (%d)\n", len(alerts.Renewals))
			fmt.Fprintln(tw, "NAME\tPHONE\tDAYS\tMEALS\tURGENCY")
			for _, a := range alerts.Renewals {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n",
					a.Customer.Name, a.Customer.Phone, a.DaysToExpiry, a.Customer.MealsRemaining, a.UrgencyScore)
			}
			fmt.Fprintf(tw, "\nPENDING PAYMENTS (%d)\n", len(alerts.PendingPayments))
			fmt.Fprintln(tw, "NAME\tPHONE\tBALANCE")
			for _, c := range alerts.PendingPayments {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.Phone, c.Balance.StringFixed(2))
			}
			return tw.Flush()
		},
	}
}

func newSummaryCommand(load loadFunc, now func() time.Time) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show this month's totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := load(cmd)
			if err != nil {
				return err
			}
			s := ledger.Summarize(st, now())
			all := ledger.Sum(st.Transactions)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "Active customers\t%d\n", s.ActiveCustomers)
			fmt.Fprintf(tw, "Income this month\t%s\n", s.IncomeThisMonth.StringFixed(2))
			fmt.Fprintf(tw, "Expense this month\t%s\n", s.ExpenseThisMonth.StringFixed(2))
			fmt.Fprintf(tw, "Net (all time)\t%s\n", all.Net().StringFixed(2))
			fmt.Fprintf(tw, "Meals served\t%d\n", all.UsageCount)
			return tw.Flush()
		},
	}
}

func newExportCommand(load loadFunc, now func() time.Time) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions and customers to CSV",
		Long:  `Write the CSV export to --out, to the dated default file name when --out is empty, or to stdout with --out -.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := load(cmd)
			if err != nil {
				return err
			}
			if out == "-" {
				return export.WriteCSV(cmd.OutOrStdout(), st.Transactions, st.Customers)
			}
			path := out
			if path == "" {
				path = export.FileName(now())
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			if err := export.WriteCSV(f, st.Transactions, st.Customers); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (\"-\" for stdout)")
	return cmd
}
