package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrewpaige1/flashcards-api/models"
	"github.com/andrewpaige1/flashcards-api/viewstate"
)

func (a *app) listCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your flashcards, one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			view := viewstate.NewCards(a.api, redirectPrinter(out))
			defer view.Close()

			view.Mount(cmd.Context())
			printed := 0
			for {
				s := view.State()
				if s.Terminated() {
					return nil
				}
				if s.Error != "" {
					return errors.New(s.Error)
				}

				printCards(out, s.Cards[printed:])
				printed = len(s.Cards)

				if !s.HasMore {
					return nil
				}
				if !all {
					fmt.Fprintf(out, "\n%d shown, more available (use --all)\n", printed)
					return nil
				}
				view.FetchNextPage(cmd.Context())
			}
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "keep fetching until every card is listed")
	return cmd
}

func printCards(w io.Writer, cards []models.FlashcardListItem) {
	if len(cards) == 0 {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range cards {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, c.State, c.Question, c.Answer)
	}
	tw.Flush()
}
