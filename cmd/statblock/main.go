// Command statblock finds the stat block regions of a markdown file and
// shows their decorations, their reading-mode HTML, or follows a file or
// acme window as it is edited.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rjkroege/statblock/config"
	"github.com/rjkroege/statblock/doctree"
	"github.com/rjkroege/statblock/theme"
)

// settings is shared by the subcommands once the root command has run.
type settings struct {
	cfg *config.Config
	log *slog.Logger

	debug  bool
	locale string
	dark   bool
}

func newRootCmd() *cobra.Command {
	s := &settings{}
	root := &cobra.Command{
		Use:           "statblock",
		Short:         "Decorate and render PF2e stat blocks in markdown",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.load(cmd)
		},
	}
	root.PersistentFlags().BoolVarP(&s.debug, "debug", "d", false, "set for verbose debugging")
	root.PersistentFlags().StringVar(&s.locale, "locale", "", "ambient locale, overriding STATBLOCK_LOCALE")
	root.PersistentFlags().BoolVar(&s.dark, "dark", false, "use the dark terminal palette")

	root.AddCommand(
		newRegionsCmd(s),
		newDecorateCmd(s),
		newShowCmd(s),
		newRenderCmd(s),
		newWatchCmd(s),
		newAcmeCmd(s),
	)
	return root
}

func (s *settings) load(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = s.debug
	}
	if flags.Changed("locale") {
		cfg.AmbientLocale = s.locale
	}
	if flags.Changed("dark") {
		cfg.Dark = s.dark
	}
	s.cfg = cfg
	s.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel()}))
	slog.SetDefault(s.log)
	theme.SetDarkMode(cfg.Dark)
	return nil
}

// readDoc parses the markdown file at path into a host document.
func readDoc(ctx context.Context, path string) (doctree.Doc, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return doctree.Doc{}, err
	}
	return doctree.ParseMarkdown(ctx, src)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "statblock:", err)
		stop()
		os.Exit(1)
	}
}
