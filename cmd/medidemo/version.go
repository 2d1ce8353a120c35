package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show MediDemo version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("MediDemo %s\n", Version)
	},
}
