package cmd

import (
	"lendvault/pkg/sysversion"
	"lendvault/service/identity"

	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

// command for migrating database
var migrateCmd = &cobra.Command{
	Use:     "migrate",
	Aliases: []string{"setdb"},
	Short:   "migrate database tables and seed configured credentials",
	Run: func(cmd *cobra.Command, args []string) {
		database := provideDatabase()
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			cmd.PrintErrln("migrate database error:", err)
			return
		}

		if err := identity.Seed(cmd.Context(), provideCredentialStore(database), cfg.Credentials); err != nil {
			cmd.PrintErrln("seed credentials error:", err)
			return
		}

		if err := sysversion.WriteSysVersion(cmd.Context(), providePropertyStore(database), sysversion.Current); err != nil {
			cmd.PrintErrln("write sysversion error:", err)
			return
		}
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
