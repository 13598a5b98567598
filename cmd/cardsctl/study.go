package main

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrewpaige1/flashcards-api/viewstate"
)

func (a *app) studyCmd() *cobra.Command {
	var rounds int

	cmd := &cobra.Command{
		Use:   "study",
		Short: "Quiz yourself on random flashcards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rounds < 1 {
				return fmt.Errorf("--rounds must be at least 1")
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			in := bufio.NewReader(cmd.InOrStdin())
			view := viewstate.NewStudy(a.api)
			defer view.Close()

			view.Mount(ctx)
			for round := 1; ; round++ {
				s := view.State()
				switch s.Status {
				case viewstate.StudyEmpty:
					fmt.Fprintln(out, s.Error)
					return nil
				case viewstate.StudyError:
					return errors.New(s.Error)
				}

				fmt.Fprintf(out, "Q: %s\n", s.Card.Question)
				fmt.Fprint(out, "(press Enter to reveal)")
				_, _ = in.ReadString('\n')
				fmt.Fprintf(out, "A: %s\n", s.Card.Answer)

				if round == rounds {
					return nil
				}
				fmt.Fprintln(out)
				view.FetchRandomCard(ctx)
			}
		},
	}

	cmd.Flags().IntVarP(&rounds, "rounds", "n", 1, "number of cards to draw")
	return cmd
}
