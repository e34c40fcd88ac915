package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and save the bearer token",
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password (read from stdin when empty)")
	_ = loginCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("reading password: %w", err)
		}
		password = strings.TrimSpace(line)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	value, err := newRemote().Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := saveToken(value); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	fmt.Printf("Logged in as %s, token saved to %s\n", email, tokenPath())
	return nil
}
