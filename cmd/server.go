package cmd

import (
	"PortfolioFM/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the PortfolioFM HTTP server",
	Long:  `Start the HTTP server exposing the song, project, experience and resume APIs.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
