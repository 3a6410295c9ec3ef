package cmd

import (
	"fmt"

	"github.com/fatali-fataliyev/event_finance/internal/auth"
	"github.com/spf13/cobra"
)

var hashTokenCmd = &cobra.Command{
	Use:   "hash-token <token>",
	Short: "Print the bcrypt hash of an admin token for ADMIN_TOKEN_HASH",
	Args:  cobra.ExactArgs(1),
	RunE:  runHashToken,
}

func init() {
	rootCmd.AddCommand(hashTokenCmd)
}

func runHashToken(_ *cobra.Command, args []string) error {
	hash, err := auth.HashToken(args[0])
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}
