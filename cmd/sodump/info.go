package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sodump/internal/elfx"
)

var infoCmd = &cobra.Command{
	Use:   "info <lib.so>",
	Short: "Show ELF header facts and load segments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ef, err := elfx.Open(args[0])
		if err != nil {
			return err
		}
		defer ef.Close()

		fmt.Printf("File:    %s\n", args[0])
		fmt.Printf("Size:    %d bytes\n", ef.FileSize())
		fmt.Printf("Machine: %s (%s)\n", ef.Machine(), ef.Class())

		segs := ef.LoadSegments()
		fmt.Printf("PT_LOAD segments: %d\n", len(segs))
		for _, s := range segs {
			fmt.Printf("  VA=0x%08x Filesz=0x%08x Memsz=0x%08x %s\n",
				s.Vaddr, s.Filesz, s.Memsz, s.Perm())
		}
		return nil
	},
}
