package cli

import (
	"github.com/spf13/cobra"
)

// IndexOptions holds flags for the index command.
type IndexOptions struct {
	*RootOptions
	Book      string
	Separator string
}

// NewIndexCommand creates the index command.
func NewIndexCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IndexOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "index <property>...",
		Short: "Print one row of property values per contact",
		Long: `Print one row per contact holding the first value of each property.

Contacts missing any of the properties are left out. Values are separated
by a tab unless --separator or the index_separator setting says otherwise.
Rows suit tools such as fzf or mutt's query_command.

Example:
  cm index FN EMAIL`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Book, "book", "b", "", "index only this book (default: whole store)")
	cmd.Flags().StringVarP(&opts.Separator, "separator", "s", "", "value separator (default from config, tab)")

	return cmd
}

func runIndex(opts *IndexOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	props, err := parseFilters(args)
	if err != nil {
		return fail(formatter, err)
	}
	if opts.Separator != "" && opts.config != nil {
		opts.config.IndexSeparator = opts.Separator
	}
	m, err := opts.manager()
	if err != nil {
		return fail(formatter, err)
	}
	rows, err := m.GenerateIndex(opts.Book, props)
	if err != nil {
		return fail(formatter, err)
	}
	return formatter.Lines(rows)
}
