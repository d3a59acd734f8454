package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dangdinh/giapha/pkg/giapha"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the giapha version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("giapha", giapha.Version)
	},
}
