package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dekarrin/codex/internal/presets"
)

var presetsFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "presets",
		Short:   "Write the built-in difficulty presets as a CXP file",
		Example: `  codex presets -o presets.cxp`,
		Args:    cobra.NoArgs,
		RunE:    runPresets,
	}
	presetsFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	set := presets.Builtin()

	if *presetsFlags.output != "" {
		return presets.SaveFile(*presetsFlags.output, set)
	}

	data, err := presets.Marshal(set)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}
