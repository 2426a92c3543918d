package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func runAuth(api, path, email, password string, out io.Writer) error {
	if email == "" || password == "" {
		return fmt.Errorf("--email and --password required")
	}
	return newClient(api, "").do("POST", path, map[string]string{"email": email, "password": password}, nil, out)
}

func init() {
	var email, password string
	addFlags := func(c *cobra.Command) {
		c.Flags().StringVarP(&email, "email", "e", "", "Account email (required)")
		c.Flags().StringVarP(&password, "password", "p", "", "Account password (required)")
	}

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and print its token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(apiFlag, "/api/auth/register", email, password, cmd.OutOrStdout())
		},
	}
	addFlags(registerCmd)
	rootCmd.AddCommand(registerCmd)

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(apiFlag, "/api/auth/login", email, password, cmd.OutOrStdout())
		},
	}
	addFlags(loginCmd)
	rootCmd.AddCommand(loginCmd)
}
