package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/portfolio/backend/internal/model"
)

type listOptions struct {
	status string
	since  string
	until  string
	search string
	limit  int
	offset int
}

func newListCmd(root *rootOptions) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List contact messages, newest first",
		Long: `List contact messages ordered by submission time, newest first.

--since and --until accept RFC 3339 timestamps or dates (YYYY-MM-DD, UTC).
--until is exclusive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listOpts, err := opts.toListOptions()
			if err != nil {
				return err
			}

			svc, closeFn, err := root.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			msgs, err := svc.List(cmd.Context(), listOpts)
			if err != nil {
				return fmt.Errorf("failed to list messages: %w", err)
			}

			out := cmd.OutOrStdout()
			if root.output == "json" {
				if msgs == nil {
					msgs = []*model.ContactMessage{}
				}
				return writeJSON(out, msgs)
			}
			if len(msgs) == 0 {
				infoColor.Fprintln(out, "No messages found")
				return nil
			}

			table := newTable("ID", "STATUS", "RECEIVED", "NAME", "EMAIL", "SUBJECT")
			for _, m := range msgs {
				table.addRow(
					m.ID,
					string(m.Status),
					m.Timestamp.UTC().Format("2006-01-02 15:04"),
					m.Name,
					m.Email,
					truncate(m.Subject, 40),
				)
			}
			table.render(out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.status, "status", "", "filter by status: new, read")
	f.StringVar(&opts.since, "since", "", "only messages received at or after this time")
	f.StringVar(&opts.until, "until", "", "only messages received before this time")
	f.StringVar(&opts.search, "search", "", "case-insensitive text in name, email, subject or message")
	f.IntVar(&opts.limit, "limit", 50, "maximum number of messages (0 = no limit)")
	f.IntVar(&opts.offset, "offset", 0, "number of messages to skip")
	return cmd
}

func (o *listOptions) toListOptions() (model.ContactListOptions, error) {
	var opts model.ContactListOptions
	if o.status != "" {
		s, err := model.ParseContactStatus(o.status)
		if err != nil {
			return opts, err
		}
		opts.Status = s
	}
	var err error
	if opts.Since, err = parseTimeFlag("since", o.since); err != nil {
		return opts, err
	}
	if opts.Until, err = parseTimeFlag("until", o.until); err != nil {
		return opts, err
	}
	if !opts.Since.IsZero() && !opts.Until.IsZero() && !opts.Since.Before(opts.Until) {
		return opts, fmt.Errorf("--since must be before --until")
	}
	if o.limit < 0 || o.offset < 0 {
		return opts, fmt.Errorf("--limit and --offset must not be negative")
	}
	opts.Search = strings.TrimSpace(o.search)
	opts.Limit = o.limit
	opts.Offset = o.offset
	return opts, nil
}

// parseTimeFlag accepts RFC 3339 or a bare date interpreted as UTC midnight.
func parseTimeFlag(name, v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid --%s %q: want RFC 3339 or YYYY-MM-DD", name, v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
