package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a PDF or TXT document for indexing",
		Long: "Sends the file to the backend, which queues it for text extraction\n" +
			"and embedding. Success means accepted, not yet indexed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireLogin(); err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer func() { _ = f.Close() }()

			if err := a.upload.SelectFile(filepath.Base(args[0]), f); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
			defer cancel()

			if err := a.upload.Submit(ctx); err != nil {
				return fmt.Errorf("upload failed: %s", a.upload.ResultMessage())
			}
			fmt.Println(a.upload.ResultMessage())
			return nil
		},
	}
}
