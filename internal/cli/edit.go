package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// EditOptions holds flags for the set and unset commands.
type EditOptions struct {
	*RootOptions
	UIDs []string
}

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set --uid <uid>... <property>...",
		Short: "Add or replace contact properties",
		Long: `Add or replace properties on contacts.

Properties that may appear once (BDAY, N, GENDER, ...) replace the existing
value. Others are appended and given a PID; pass the same PID to replace
that instance later. UID, VERSION and REV cannot be set.

Example:
  cm set --uid 0190a5b4-1c2d-7e3f-8a4b-5c6d7e8f9a0b "TEL;TYPE=home:555-1111"
  cm set --uid 0190a5b4-1c2d-7e3f-8a4b-5c6d7e8f9a0b "TEL;PID=1;TYPE=home:555-9999"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(opts, args, cmd)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.UIDs, "uid", "u", nil, "contact UID (repeatable, required)")
	_ = cmd.MarkFlagRequired("uid")

	return cmd
}

// NewUnsetCommand creates the unset command.
func NewUnsetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "unset --uid <uid>... <property>...",
		Short: "Remove contact properties",
		Long: `Remove properties from contacts.

A property carrying a PID removes that instance only. Otherwise every
instance whose parameters and value match the filter exactly is removed;
a filter without value removes every instance with those parameters.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnset(opts, args, cmd)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.UIDs, "uid", "u", nil, "contact UID (repeatable, required)")
	_ = cmd.MarkFlagRequired("uid")

	return cmd
}

func runSet(opts *EditOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	props, err := parseFilters(args)
	if err != nil {
		return fail(formatter, err)
	}
	uids, err := parseUIDs(opts.UIDs)
	if err != nil {
		return fail(formatter, err)
	}
	m, err := opts.manager()
	if err != nil {
		return fail(formatter, err)
	}
	sets, err := m.AddOrReplaceProperty(props, uids)
	if err != nil {
		return fail(formatter, err)
	}
	return writePropertySets(formatter, sets)
}

func runUnset(opts *EditOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	props, err := parseFilters(args)
	if err != nil {
		return fail(formatter, err)
	}
	uids, err := parseUIDs(opts.UIDs)
	if err != nil {
		return fail(formatter, err)
	}
	m, err := opts.manager()
	if err != nil {
		return fail(formatter, err)
	}
	if err := m.DeleteProperties(props, uids); err != nil {
		return fail(formatter, err)
	}
	return formatter.Success(fmt.Sprintf("Updated %d contact(s)", len(uids)))
}
