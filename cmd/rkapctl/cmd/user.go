package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/rkap/internal/user"
	userStore "github.com/MrJamesThe3rd/rkap/internal/user/store"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var newUser user.CreateParams

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account, typically the first admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")
		newUser.Role = user.Role(role)

		if newUser.Password == "" {
			err := huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&newUser.Password).
				Run()
			if err != nil {
				return err
			}
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		u, err := user.NewService(userStore.New(db)).Create(cmd.Context(), newUser)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s, %s)\n", u.ID, u.Email, u.Role)

		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&newUser.FullName, "name", "", "full name")
	userCreateCmd.Flags().StringVar(&newUser.Email, "email", "", "login email")
	userCreateCmd.Flags().StringVar(&newUser.Password, "password", "", "password (prompted when empty)")
	userCreateCmd.Flags().String("role", string(user.RoleAdmin), "admin, assistant_admin or member")

	_ = userCreateCmd.MarkFlagRequired("name")
	_ = userCreateCmd.MarkFlagRequired("email")

	userCmd.AddCommand(userCreateCmd)
}
