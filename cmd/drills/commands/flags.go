package commands

import (
	"github.com/spf13/cobra"
)

// addPersistenceFlags adds the result store flags shared by every subcommand
func addPersistenceFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("file", "f", "", "Path to JSON file for persistence")
	cmd.PersistentFlags().StringP("dynamodb-table", "t", "", "DynamoDB table name for persistence")
	cmd.PersistentFlags().StringP("dynamodb-endpoint", "e", "", "DynamoDB endpoint URL (optional, uses AWS SDK default if not specified)")
}

func bindPersistenceFlags(c *cli, cmd *cobra.Command) {
	c.bind("store.file", cmd.PersistentFlags(), "file")
	c.bind("store.dynamodb_table", cmd.PersistentFlags(), "dynamodb-table")
	c.bind("store.dynamodb_endpoint", cmd.PersistentFlags(), "dynamodb-endpoint")
}
