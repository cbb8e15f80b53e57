package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nixai/knowledge-assistant/internal/gateway"
)

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: "List the uploaded documents and their index status",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireLogin(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
			defer cancel()

			if err := a.docs.Refresh(ctx); err != nil {
				return fmt.Errorf("%s", gateway.MessageFor(err))
			}

			snapshot := a.docs.Snapshot()
			if len(snapshot) == 0 {
				fmt.Println("No documents uploaded yet.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCHUNKS\tEMBEDDINGS")
			for _, d := range snapshot {
				fmt.Fprintf(tw, "%s\t%d\t%d\n", d.Name, d.Chunks, d.EmbeddingCount)
			}
			return tw.Flush()
		},
	}
}
