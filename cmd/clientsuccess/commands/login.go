package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/clientsuccess/internal/constants"
	"github.com/fivetwenty-io/clientsuccess/pkg/clientsuccess"
	"github.com/fivetwenty-io/clientsuccess/pkg/csclient"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to ClientSuccess",
		Long:  "Exchange an API user's email and password for an access token and save it",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			if email == "" {
				email = config.Email
			}

			if email == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Fprint(cmd.OutOrStdout(), "Email: ")
				email, _ = reader.ReadString('\n')
				email = strings.TrimSpace(email)
			}

			if email == "" {
				return constants.ErrEmailRequired
			}

			if password == "" {
				password = config.Password
			}

			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = string(bytePassword)
				fmt.Fprintln(cmd.OutOrStdout())
			}

			api, err := csclient.New(&clientsuccess.Config{
				Email:    email,
				Password: password,
				URL:      config.URL,
				Logger:   newLogger(),
				Debug:    viper.GetBool("verbose"),
			})
			if err != nil {
				return err
			}

			token, err := api.Token(context.Background())
			if err != nil {
				return fmt.Errorf("failed to authenticate: %w", err)
			}

			config.Email = email
			config.Token = token

			if err := saveConfig(config); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Successfully logged in as %s\n", email)
			fmt.Fprintf(cmd.OutOrStdout(), "Token: %s\n", maskToken(token))

			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "API user email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "API user password")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from ClientSuccess",
		Long:  "Remove the saved access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			config.Token = ""
			viper.Set("token", "")

			if err := saveConfig(config); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Successfully logged out")

			return nil
		},
	}
}
