// Command mocat inspects compiled GNU gettext MO catalogues: dumping their
// header and metadata, listing their original strings, or looking up a
// msgid the way a running Domain would.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/snapcore/go-libintl"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mocat",
		Short:         "Inspect compiled gettext MO catalogues",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newDumpCmd(), newListCmd(), newLookupCmd())
	return root
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump FILE",
		Short: "Print catalogue metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := gettext.LoadCatalogFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "strings: %d\n", cat.NumStrings())
			fmt.Fprintf(cmd.OutOrStdout(), "nplurals: %d\n", cat.NumPlurals())
			for k, v := range cat.Metadata() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", k, v)
			}
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list FILE",
		Short: "Print every original string in the catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := gettext.LoadCatalogFile(args[0])
			if err != nil {
				return err
			}
			for i := 1; i < cat.NumStrings(); i++ {
				fmt.Fprintln(cmd.OutOrStdout(), cat.NthOrigString(i))
			}
			return nil
		},
	}
}

func newLookupCmd() *cobra.Command {
	var (
		ctx    string
		plural string
		n      uint32
	)

	cmd := &cobra.Command{
		Use:   "lookup FILE MSGID",
		Short: "Look up a single message the way a Domain View would",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := gettext.LoadCatalogFile(args[0])
			if err != nil {
				return err
			}
			lib := gettext.NewLibrary(cat)
			msgid := args[1]

			var result string
			switch {
			case ctx != "" && plural != "":
				result = lib.GetCtxPl(ctx, msgid, plural, n)
			case ctx != "":
				result = lib.GetCtx(ctx, msgid)
			case plural != "":
				result = lib.GetPl(msgid, plural, n)
			default:
				result = lib.Get(msgid)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&ctx, "ctx", "", "msgctxt to disambiguate the lookup")
	flags.StringVar(&plural, "plural", "", "plural form of MSGID")
	flags.Uint32VarP(&n, "count", "n", 1, "count used to select a plural form")

	return cmd
}
