package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

func newStatusCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <new|read>",
		Short: "Set the status of a contact message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := model.ParseContactStatus(args[1])
			if err != nil {
				return err
			}

			svc, closeFn, err := root.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := svc.UpdateStatus(cmd.Context(), args[0], status); err != nil {
				return describeUpdateError(args[0], err)
			}
			successColor.Fprintf(cmd.OutOrStdout(), "✓ %s marked %s\n", args[0], status)
			return nil
		},
	}
}

func newMarkReadCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mark-read <id>...",
		Short: "Mark one or more contact messages as read",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := root.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			out := cmd.OutOrStdout()
			failed := 0
			for _, id := range args {
				if err := svc.UpdateStatus(cmd.Context(), id, model.ContactStatusRead); err != nil {
					failed++
					errorColor.Fprintf(cmd.ErrOrStderr(), "✗ %v\n", describeUpdateError(id, err))
					continue
				}
				successColor.Fprintf(out, "✓ %s marked read\n", id)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d messages not updated", failed, len(args))
			}
			return nil
		},
	}
}

func describeUpdateError(id string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("message %s not found", id)
	}
	return fmt.Errorf("update %s: %w", id, err)
}
