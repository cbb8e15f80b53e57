package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nixai/knowledge-assistant/internal/gateway"
	"github.com/nixai/knowledge-assistant/internal/types"
)

func newAskCmd() *cobra.Command {
	var withHistory bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about the uploaded documents",
		Long: "Sends the question to the backend and prints the answer with its\n" +
			"cited source passages. Prefix a question with @filename to target\n" +
			"a single document.",
		Args: cobra.MinimumNArgs(1),
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

			if withHistory {
				a.chat.LoadHistory(ctx)
			}

			question := strings.Join(args, " ")
			turn, err := a.chat.Ask(ctx, question)
			if err != nil {
				return fmt.Errorf("%s", gateway.MessageFor(err))
			}

			printTurn(*turn)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withHistory, "with-history", false, "Load the stored transcript before asking")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print the stored chat transcript",
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

			a.chat.LoadHistory(ctx)
			transcript := a.chat.Transcript()
			if len(transcript) == 0 {
				fmt.Println("No chat history yet.")
				return nil
			}
			for _, turn := range transcript {
				printTurn(turn)
				fmt.Println()
			}
			return nil
		},
	}
}

func printTurn(turn types.ChatTurn) {
	fmt.Printf("Q: %s\n", turn.Question)
	fmt.Printf("A: %s\n", turn.Answer)
	for i, src := range turn.Sources {
		fmt.Printf("  [%d] %s: %s\n", i+1, src.Filename, src.Content)
	}
}
