package main

import (
	"context"
	"fmt"
	"io"

	"github.com/danmuck/ledgerwire/internal/client"
	"github.com/danmuck/ledgerwire/internal/config"
	"github.com/danmuck/ledgerwire/internal/ids"
	"github.com/danmuck/ledgerwire/internal/protocol/records"
	"github.com/spf13/cobra"
)

func (a *app) createAccountsCmd() *cobra.Command {
	var (
		ledger uint32
		code   uint16
		flags  uint16
		count  int
	)
	cmd := &cobra.Command{
		Use:   "create-accounts [id...]",
		Short: "Create accounts on one ledger",
		Long: `Create one account per id. With no ids, --count accounts are created with
time-ordered generated ids.

Example:
  ledgerctl create-accounts --ledger 700 --code 10 1 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			accountIDs, err := parseIDs(args)
			if err != nil {
				return err
			}
			if len(accountIDs) == 0 {
				gen := ids.NewGenerator()
				for range count {
					accountIDs = append(accountIDs, gen.Next())
				}
			}
			accounts := make([]records.Account, len(accountIDs))
			for i, id := range accountIDs {
				accounts[i] = records.Account{ID: id, Ledger: ledger, Code: code, Flags: records.AccountFlags(flags)}
			}

			return a.withSession(cmd, func(ctx context.Context, c *client.Client) error {
				results, err := c.CreateAccounts(ctx, accounts)
				if err != nil {
					return err
				}
				failed := make(map[uint32]records.CreateAccountResult, len(results))
				for _, r := range results {
					failed[r.Index] = r.Result
				}
				for i, acct := range accounts {
					result := records.AccountResultOK
					if r, ok := failed[uint32(i)]; ok {
						result = r
					}
					printf(cmd.OutOrStdout(), "account id=%s result=%s\n", acct.ID, result)
				}
				return nil
			})
		},
	}
	cmd.Flags().Uint32Var(&ledger, "ledger", 1, "ledger for every account")
	cmd.Flags().Uint16Var(&code, "code", 1, "account code")
	cmd.Flags().Uint16Var(&flags, "flags", 0, "raw account flags")
	cmd.Flags().IntVar(&count, "count", 1, "accounts to generate when no ids are given")
	return cmd
}

func (a *app) createTransfersCmd() *cobra.Command {
	var (
		id, debit, credit, amount string
		ledger                    uint32
		code                      uint16
		flags                     uint16
	)
	cmd := &cobra.Command{
		Use:   "create-transfers",
		Short: "Create one transfer between two accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := records.Transfer{Ledger: ledger, Code: code, Flags: records.TransferFlags(flags)}
			var err error
			if t.ID, err = config.ParseID("id", id); err != nil {
				return err
			}
			if t.ID.IsZero() {
				t.ID = ids.NewGenerator().Next()
			}
			if t.DebitAccountID, err = config.ParseID("debit", debit); err != nil {
				return err
			}
			if t.CreditAccountID, err = config.ParseID("credit", credit); err != nil {
				return err
			}
			if t.Amount, err = config.ParseID("amount", amount); err != nil {
				return err
			}

			return a.withSession(cmd, func(ctx context.Context, c *client.Client) error {
				results, err := c.CreateTransfers(ctx, []records.Transfer{t})
				if err != nil {
					return err
				}
				result := records.TransferResultOK
				if len(results) > 0 {
					result = results[0].Result
				}
				printf(cmd.OutOrStdout(), "transfer id=%s result=%s\n", t.ID, result)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "transfer id (generated when empty)")
	cmd.Flags().StringVar(&debit, "debit", "", "debit account id")
	cmd.Flags().StringVar(&credit, "credit", "", "credit account id")
	cmd.Flags().StringVar(&amount, "amount", "0", "amount, decimal or 0x hex")
	cmd.Flags().Uint32Var(&ledger, "ledger", 1, "ledger")
	cmd.Flags().Uint16Var(&code, "code", 1, "transfer code")
	cmd.Flags().Uint16Var(&flags, "flags", 0, "raw transfer flags")
	return cmd
}

func (a *app) lookupAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup-accounts <id...>",
		Short: "Print accounts by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountIDs, err := parseIDs(args)
			if err != nil {
				return err
			}
			return a.withSession(cmd, func(ctx context.Context, c *client.Client) error {
				accounts, err := c.LookupAccounts(ctx, accountIDs...)
				if err != nil {
					return err
				}
				for _, acct := range accounts {
					writeAccount(cmd.OutOrStdout(), acct)
				}
				return nil
			})
		},
	}
}

func (a *app) lookupTransfersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup-transfers <id...>",
		Short: "Print transfers by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transferIDs, err := parseIDs(args)
			if err != nil {
				return err
			}
			return a.withSession(cmd, func(ctx context.Context, c *client.Client) error {
				transfers, err := c.LookupTransfers(ctx, transferIDs...)
				if err != nil {
					return err
				}
				for _, t := range transfers {
					writeTransfer(cmd.OutOrStdout(), t)
				}
				return nil
			})
		},
	}
}

func accountFilterFlags(cmd *cobra.Command, account *string, limit *uint32, reversed *bool) {
	cmd.Flags().StringVar(account, "account", "", "account id")
	cmd.Flags().Uint32Var(limit, "limit", 100, "maximum rows")
	cmd.Flags().BoolVar(reversed, "reversed", false, "newest first")
}

func buildAccountFilter(account string, limit uint32, reversed bool) (records.AccountFilter, error) {
	id, err := config.ParseID("account", account)
	if err != nil {
		return records.AccountFilter{}, err
	}
	if id.IsZero() {
		return records.AccountFilter{}, fmt.Errorf("--account is required")
	}
	f := records.AccountFilter{
		AccountID: id,
		Limit:     limit,
		Flags:     records.AccountFilterDebits | records.AccountFilterCredits,
	}
	if reversed {
		f.Flags |= records.AccountFilterReversed
	}
	return f, nil
}

func (a *app) transfersCmd() *cobra.Command {
	var (
		account  string
		limit    uint32
		reversed bool
	)
	cmd := &cobra.Command{
		Use:   "transfers",
		Short: "Print transfers touching one account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := buildAccountFilter(account, limit, reversed)
			if err != nil {
				return err
			}
			return a.withSession(cmd, func(ctx context.Context, c *client.Client) error {
				transfers, err := c.GetAccountTransfers(ctx, f)
				if err != nil {
					return err
				}
				for _, t := range transfers {
					writeTransfer(cmd.OutOrStdout(), t)
				}
				return nil
			})
		},
	}
	accountFilterFlags(cmd, &account, &limit, &reversed)
	return cmd
}

func (a *app) balancesCmd() *cobra.Command {
	var (
		account  string
		limit    uint32
		reversed bool
	)
	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Print historical balances of an account with the history flag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := buildAccountFilter(account, limit, reversed)
			if err != nil {
				return err
			}
			return a.withSession(cmd, func(ctx context.Context, c *client.Client) error {
				balances, err := c.GetAccountBalances(ctx, f)
				if err != nil {
					return err
				}
				for _, b := range balances {
					printf(cmd.OutOrStdout(), "balance timestamp=%d debits_pending=%s debits_posted=%s credits_pending=%s credits_posted=%s\n",
						b.Timestamp, b.DebitsPending, b.DebitsPosted, b.CreditsPending, b.CreditsPosted)
				}
				return nil
			})
		},
	}
	accountFilterFlags(cmd, &account, &limit, &reversed)
	return cmd
}

func writeAccount(w io.Writer, a records.Account) {
	printf(w, "account id=%s ledger=%d code=%d debits_pending=%s debits_posted=%s credits_pending=%s credits_posted=%s timestamp=%d\n",
		a.ID, a.Ledger, a.Code, a.DebitsPending, a.DebitsPosted, a.CreditsPending, a.CreditsPosted, a.Timestamp)
}

func writeTransfer(w io.Writer, t records.Transfer) {
	printf(w, "transfer id=%s debit=%s credit=%s amount=%s ledger=%d code=%d timestamp=%d\n",
		t.ID, t.DebitAccountID, t.CreditAccountID, t.Amount, t.Ledger, t.Code, t.Timestamp)
}
