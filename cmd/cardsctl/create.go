package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) createCmd() *cobra.Command {
	var question, answer string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a flashcard to your collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := a.api.CreateFlashcard(cmd.Context(), question, answer)
			if err != nil {
				return fmt.Errorf("create flashcard: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created flashcard %d\n", card.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&question, "question", "", "front of the card")
	cmd.Flags().StringVar(&answer, "answer", "", "back of the card")
	_ = cmd.MarkFlagRequired("question")
	_ = cmd.MarkFlagRequired("answer")
	return cmd
}
