package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andrewpaige1/flashcards-api/client"
	"github.com/andrewpaige1/flashcards-api/viewstate"
)

// app is the state shared by every subcommand once the root has connected.
type app struct {
	cfg    *viper.Viper
	api    *client.Client
	config string
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: viper.New()}

	root := &cobra.Command{
		Use:   "cardsctl",
		Short: "Manage and study your flashcards",
		Long: `cardsctl talks to the flashcards API on behalf of one user.

The API address and the bearer token are read from flags, from
CARDSCTL_API_URL / CARDSCTL_TOKEN (a .env file is honored), or from
a config file.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.connect,
	}

	root.PersistentFlags().StringVar(&a.config, "config", "", "config file (default: ./.cardsctl.yaml)")
	root.PersistentFlags().String("api-url", "", "flashcards API base URL")
	root.PersistentFlags().String("token", "", "bearer token")

	root.AddCommand(
		a.listCmd(),
		a.createCmd(),
		a.deleteCmd(),
		a.studyCmd(),
	)
	return root
}

func (a *app) connect(cmd *cobra.Command, args []string) error {
	if err := loadConfig(a.cfg, a.config, cmd.Flags()); err != nil {
		return err
	}
	a.api = client.New(a.cfg.GetString(cfgKeyAPIURL), a.cfg.GetString(cfgKeyToken))
	return nil
}

// redirectHints tells the user what a view's redirect means on a terminal.
var redirectHints = map[string]string{
	viewstate.CreatePath: "No flashcards yet. Add one with: cardsctl create --question Q --answer A",
	viewstate.LoginPath:  "Not signed in. Set CARDSCTL_TOKEN or pass --token.",
}

func redirectPrinter(w io.Writer) viewstate.Navigator {
	return viewstate.NavigatorFunc(func(path string) {
		if hint, ok := redirectHints[path]; ok {
			fmt.Fprintln(w, hint)
			return
		}
		fmt.Fprintf(w, "Redirected to %s\n", path)
	})
}
