package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/prism/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and remember the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		auth, err := e.auth(cmd.Context())
		if err != nil {
			return err
		}
		u, err := auth.Login(cmd.Context(), username, password)
		if errors.Is(err, session.ErrInvalidCredentials) {
			return errors.New(session.InvalidCredentialsMessage)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Signed in as %s (%s)\n", u.Username, u.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		auth, err := e.auth(cmd.Context())
		if err != nil {
			return err
		}
		if err := auth.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		auth, err := e.auth(cmd.Context())
		if err != nil {
			return err
		}
		u, ok := auth.Current()
		if !ok {
			fmt.Println("Not signed in.")
			return nil
		}
		fmt.Printf("%s (%s), signed in %s\n", u.Username, u.Role, u.LoggedInAt.Local().Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	loginCmd.Flags().StringP("username", "u", "", "Username")
	loginCmd.Flags().StringP("password", "p", "", "Password")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")
}
