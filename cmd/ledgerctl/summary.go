package main

import (
	"github.com/SscSPs/general_ledger/internal/core/domain"
	"github.com/SscSPs/general_ledger/internal/dto"
	"github.com/spf13/cobra"
)

var (
	summaryAccount string
	summaryFrom    string
	summaryTo      string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print debit and credit totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := domain.EntryFilter{AccountName: summaryAccount}
		start, err := dto.ParseDate("from", summaryFrom, false)
		if err != nil {
			return err
		}
		end, err := dto.ParseDate("to", summaryTo, true)
		if err != nil {
			return err
		}
		filter.StartDate, filter.EndDate = start, end

		ctx := cmd.Context()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		sum, err := s.services.Summary.Summarize(ctx, filter)
		if err != nil {
			return err
		}
		cmd.Printf("debits:   %d totalling %s USD\n", sum.NumDebits, sum.TotalDebitAmount.StringFixed(domain.AmountScale))
		cmd.Printf("credits:  %d totalling %s USD\n", sum.NumCredits, sum.TotalCreditAmount.StringFixed(domain.AmountScale))
		cmd.Printf("balanced: %t\n", sum.IsBalanced)
		return nil
	},
}

func init() {
	summaryCmd.Flags().StringVar(&summaryAccount, "account", "", "restrict to one account name")
	summaryCmd.Flags().StringVar(&summaryFrom, "from", "", "start date (YYYY-MM-DD or RFC 3339)")
	summaryCmd.Flags().StringVar(&summaryTo, "to", "", "end date, inclusive (YYYY-MM-DD or RFC 3339)")
}
