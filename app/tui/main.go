package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noelzubin/notefind/notes"
	"github.com/noelzubin/notefind/search"
	"github.com/noelzubin/notefind/search/regex_engine"
	"github.com/noelzubin/notefind/utils"
	"github.com/spf13/cobra"
)

// flags shared by every command
type rootFlags struct {
	configPath string
	notesPath  string
	verbose    bool
}

// env is what every command runs against.
type env struct {
	config     *utils.Config
	collection *notes.Collection
	engine     search.Engine
}

// loadEnv reads the config and the notes snapshot.
func loadEnv(flags *rootFlags) (*env, error) {
	config, err := utils.NewConfig(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.notesPath != "" {
		config.NotesPath = flags.notesPath
	}

	collection, err := notes.Load(config.NotesPath)
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}

	engine := regex_engine.NewRegexEngine(regex_engine.Config{
		MatchTimeout: config.MatchTimeout,
		Logger:       log.Default(),
	})

	return &env{config: config, collection: collection, engine: engine}, nil
}

// setupLogging sends the log to stderr in verbose mode, otherwise to
// the debug log for the interactive app and nowhere for one-shot commands.
func setupLogging(cmd *cobra.Command, flags *rootFlags) (io.Closer, error) {
	switch {
	case flags.verbose:
		log.SetOutput(cmd.ErrOrStderr())
	case cmd.HasParent():
		log.SetOutput(io.Discard)
	default:
		if err := os.MkdirAll(utils.DataDir(), 0700); err != nil {
			return nil, err
		}
		return tea.LogToFile(path.Join(utils.DataDir(), "debug.log"), "debug")
	}
	return nil, nil
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	var logFile io.Closer

	root := &cobra.Command{
		Use:           "notefind",
		Short:         "Search and filter notes",
		Long:          `Interactive search over a notes snapshot with literal, whole word and regex matching plus category, priority and date filters.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			logFile, err = setupLogging(cmd, flags)
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv(flags)
			if err != nil {
				return err
			}

			// Create a new bubbletea Model
			m := New(e.engine, e.collection, e.config)
			p := tea.NewProgram(m)
			_, err = p.Run()
			return err
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.config/notefind/config.yaml)")
	root.PersistentFlags().StringVarP(&flags.notesPath, "notes", "n", "", "notes snapshot file or directory")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log diagnostics to stderr")

	root.AddCommand(newQueryCmd(flags))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
