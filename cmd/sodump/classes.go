package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"sodump/internal/render"
)

var classesOpts pipelineOpts

var classesCmd = &cobra.Command{
	Use:   "classes <lib.so>",
	Short: "Print reconstructed class declarations to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pr, err := runPipeline(cmd.Context(), args[0], classesOpts)
		if err != nil {
			return err
		}
		render.WriteDeclarations(os.Stdout, pr.lib, pr.models, pr.vt, time.Now())
		return nil
	},
}

func init() {
	addPipelineFlags(classesCmd, &classesOpts)
}
