package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("syntree.cli")

func main() {
	var verbose int
	var logPath string

	rootCmd := &cobra.Command{
		Use:   "syntree",
		Short: "Lossless syntax trees for small languages",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logPath == "" {
				commonlog.Configure(verbose, nil)
			} else {
				commonlog.Configure(verbose, &logPath)
			}
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "log more (repeat for debug output)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newGrammarCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
