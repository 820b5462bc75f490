package main

import (
	"github.com/spf13/cobra"
)

func main() {
	var root = &cobra.Command{Use: "gazeta"}

	root.AddCommand(serveCMD(), migrateCMD(), collectCMD())
	_ = root.Execute()
}
