// Package main provides the giapha CLI: clan data backup, restore, GEDCOM
// export and the local API server.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
