package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/cardbook/internal/config"
	"github.com/roach88/cardbook/internal/contacts"
	"github.com/roach88/cardbook/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	DataDir    string

	// Set by PersistentPreRunE.
	config *config.Config

	// Extra options for the contacts manager; tests inject deterministic
	// UID generators and clocks here.
	managerOptions []contacts.Option
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the cm CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cm",
		Short: "cm - contact manager",
		Long: `A contact manager keeping vCard contacts in plain files.

Every contact is stored once under <data-dir>/contacts/<uid>.vcf. Books are
directories under <data-dir>/books/ holding references to those files; the
"default" book always exists. A contact removed from its last book is deleted.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fail(newFormatter(opts, cmd), fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return fail(newFormatter(opts, cmd), err)
			}
			if opts.DataDir != "" {
				cfg.DataDir = opts.DataDir
			}
			level, _ := cfg.Level()
			if opts.Verbose {
				level = slog.LevelDebug
			}
			configureLogging(cmd.ErrOrStderr(), level)
			opts.config = cfg
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/cm/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "data directory (default $XDG_DATA_HOME/cm)")

	// Add subcommands
	cmd.AddCommand(NewBookCommand(opts))
	cmd.AddCommand(NewContactCommand(opts))
	cmd.AddCommand(NewFindCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewUnsetCommand(opts))
	cmd.AddCommand(NewIndexCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

// manager opens the store under the configured data directory.
func (o *RootOptions) manager() (*contacts.Manager, error) {
	cfg := o.config
	if cfg == nil {
		cfg = config.Default()
	}
	slog.Debug("opening store", "path", cfg.DataDir)
	s, err := store.Open(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	opts := append([]contacts.Option{contacts.WithIndexSeparator(cfg.IndexSeparator)}, o.managerOptions...)
	return contacts.New(s, opts...), nil
}

func configureLogging(w io.Writer, level slog.Level) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
