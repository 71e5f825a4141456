package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/demon/internal/config"
	"github.com/dshills/demon/internal/plugin"
	"github.com/dshills/demon/internal/scripts/stock"
)

func newScriptsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scripts",
		Short: "List built-in scripts and the symbol list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, _, err := resolveSettings(cmd)
			if err != nil {
				return err
			}
			scripts := plugin.NewRegistry()
			if err := stock.Register(scripts); err != nil {
				return err
			}
			return listScripts(cmd.OutOrStdout(), scripts, settings)
		},
	}
}

func listScripts(out io.Writer, scripts *plugin.Registry, s config.Settings) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODULE\tSYMBOL\tROLE")
	for _, path := range scripts.Paths() {
		for _, sym := range scripts.Symbols(path) {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", path, sym, role(sym, s.EditorPrefix))
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	syms, err := config.LoadSymbols(s.SymbolFile)
	if err != nil {
		fmt.Fprintf(out, "\nsymbol file: %v\n", err)
		return nil
	}
	fmt.Fprintf(out, "\nsymbol file %s:\n", s.SymbolFile)
	for _, sym := range syms {
		fmt.Fprintf(out, "  %s (%s)\n", sym, role(sym, s.EditorPrefix))
	}
	return nil
}

func role(symbol, editorPrefix string) string {
	if strings.HasPrefix(symbol, editorPrefix) {
		return "editor"
	}
	return "game"
}
