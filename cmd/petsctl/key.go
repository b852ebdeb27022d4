package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	var username, password string
	keyCmd := &cobra.Command{
		Use:   "key",
		Short: "Resolve the auth key for a username/password",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			key, err := c.Key(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
	keyCmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	keyCmd.Flags().StringVarP(&password, "password", "p", "", "Password (required)")
	_ = keyCmd.MarkFlagRequired("username")
	_ = keyCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(keyCmd)
}
