package main

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrewpaige1/flashcards-api/models"
	"github.com/andrewpaige1/flashcards-api/viewstate"
)

func (a *app) deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your flashcards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid flashcard id %q", args[0])
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			view := viewstate.NewCards(a.api, redirectPrinter(out))
			defer view.Close()

			card, err := findCard(cmd, view, id)
			if err != nil || card == nil {
				return err
			}

			view.RequestDelete(*card)
			if !yes {
				fmt.Fprintf(out, "Delete %q? [y/N] ", card.Question)
				reply, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if r := strings.ToLower(strings.TrimSpace(reply)); r != "y" && r != "yes" {
					view.CancelDelete()
					fmt.Fprintln(out, "Cancelled")
					return nil
				}
			}

			view.ConfirmDelete(ctx)
			s := view.State()
			if s.Terminated() {
				return nil
			}
			if s.Error != "" {
				return errors.New(s.Error)
			}
			fmt.Fprintf(out, "Deleted flashcard %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// findCard pages through the view until the card shows up. It returns nil
// without an error when the view navigated away.
func findCard(cmd *cobra.Command, view *viewstate.Cards, id int64) (*models.FlashcardListItem, error) {
	view.Mount(cmd.Context())
	for {
		s := view.State()
		if s.Terminated() {
			return nil, nil
		}
		if s.Error != "" {
			return nil, errors.New(s.Error)
		}
		for _, c := range s.Cards {
			if c.ID == id {
				return &c, nil
			}
		}
		if !s.HasMore {
			return nil, fmt.Errorf("flashcard %d not found", id)
		}
		view.FetchNextPage(cmd.Context())
	}
}
