package main

import (
	"os"

	"github.com/spf13/cobra"

	"sodump/internal/render"
)

var vtablesOpts pipelineOpts

var vtablesCmd = &cobra.Command{
	Use:   "vtables <lib.so>",
	Short: "Print the raw vtable/typeinfo evidence per class",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pr, err := runPipeline(cmd.Context(), args[0], vtablesOpts)
		if err != nil {
			return err
		}
		render.WriteVtableDump(os.Stdout, pr.lib, pr.vt)
		return nil
	},
}

func init() {
	addPipelineFlags(vtablesCmd, &vtablesOpts)
}
