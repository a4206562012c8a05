package cmd

import (
	"lendvault/core"

	"github.com/spf13/cobra"
)

var credentialCmd = &cobra.Command{
	Use:     "credential",
	Aliases: []string{"cred"},
	Short:   "grant or revoke holder control over identities",
}

var credentialGrantCmd = &cobra.Command{
	Use:   "grant <holder> <identity>",
	Short: "let holder act for identity",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		database := provideDatabase()
		defer database.Close()

		if err := provideCredentialStore(database).Save(cmd.Context(), &core.Credential{
			Holder:   args[0],
			Identity: args[1],
		}); err != nil {
			cmd.PrintErrln("grant", err)
			return
		}

		cmd.Println("granted", args[1], "to", args[0])
	},
}

var credentialRevokeCmd = &cobra.Command{
	Use:   "revoke <holder> <identity>",
	Short: "revoke holder control over identity",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		database := provideDatabase()
		defer database.Close()

		if err := provideCredentialStore(database).Delete(cmd.Context(), args[0], args[1]); err != nil {
			cmd.PrintErrln("revoke", err)
			return
		}

		cmd.Println("revoked", args[1], "from", args[0])
	},
}

func init() {
	rootCmd.AddCommand(credentialCmd)
	credentialCmd.AddCommand(credentialGrantCmd, credentialRevokeCmd)
}
