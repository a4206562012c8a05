package cmd

import (
	"encoding/json"
	"errors"

	"lendvault/core"
	"lendvault/pkg/interest"
	"lendvault/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

// vault administration against the local database
var vaultCmd = &cobra.Command{
	Use:     "vault",
	Aliases: []string{"v"},
	Short:   "administer vaults",
}

func printJSON(cmd *cobra.Command, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}

	cmd.Println(string(data))
}

func vaultArg(args []string) uint64 {
	if len(args) == 0 {
		panic("vault id required")
	}

	id := cast.ToUint64(args[0])
	if id == 0 {
		panic("invalid vault id")
	}

	return id
}

func operatorFlag(cmd *cobra.Command) string {
	operator, _ := cmd.Flags().GetString("operator")
	if operator == "" {
		operator = provideOperator()
	}

	return operator
}

func withVaultService(fn func(vaultService core.VaultService, database *db.DB)) {
	database := provideDatabase()
	defer database.Close()

	walletService := provideWalletService(provideWallet())
	fn(provideVaultService(database, provideCustody(database, walletService)), database)
}

var vaultInitCmd = &cobra.Command{
	Use:   "init",
	Short: "initialize a vault for an asset",
	Run: func(cmd *cobra.Command, args []string) {
		assetID, _ := cmd.Flags().GetString("asset")
		if assetID == "" {
			panic("invalid asset")
		}

		owner, _ := cmd.Flags().GetString("owner")
		pool, _ := cmd.Flags().GetString("pool")
		if pool == "" {
			pool = cfg.Defaults.Pool
		}

		weighted := cfg.Defaults.WeightedExtension
		if cmd.Flags().Changed("weighted") {
			weighted, _ = cmd.Flags().GetBool("weighted")
		}

		factor := cfg.Defaults.ReserveFactor
		if rf, _ := cmd.Flags().GetString("reserve-factor"); rf != "" {
			v, err := number.ToScaled(number.Decimal(rf), 9)
			if err != nil || v > interest.Precision {
				panic("invalid reserve factor")
			}

			factor = v
		}

		operator := operatorFlag(cmd)
		if owner == "" {
			owner = operator
		}

		withVaultService(func(vaultService core.VaultService, _ *db.DB) {
			v, err := vaultService.Initialize(cmd.Context(), operator, &core.InitializeRequest{
				AssetID:           assetID,
				Owner:             owner,
				Pool:              pool,
				ReserveFactor:     factor,
				WeightedExtension: weighted,
			})
			if err != nil {
				cmd.PrintErrln("init vault", err)
				return
			}

			printJSON(cmd, v)
		})
	},
}

var vaultInfoCmd = &cobra.Command{
	Use:   "info <vault id>",
	Short: "show vault state and rates",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		vaultID := vaultArg(args)
		withVaultService(func(vaultService core.VaultService, _ *db.DB) {
			info, err := vaultService.VaultInfo(cmd.Context(), vaultID)
			if err != nil {
				cmd.PrintErrln("vault info", err)
				return
			}

			printJSON(cmd, info)
		})
	},
}

var vaultAccrueCmd = &cobra.Command{
	Use:   "accrue <vault id>",
	Short: "accrue interest up to now",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		vaultID := vaultArg(args)
		withVaultService(func(vaultService core.VaultService, _ *db.DB) {
			v, err := vaultService.Accrue(cmd.Context(), vaultID)
			if err != nil {
				cmd.PrintErrln("accrue", err)
				return
			}

			printJSON(cmd, v)
		})
	},
}

func pauseCommand(use, short string, pause bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <vault id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			vaultID := vaultArg(args)
			operator := operatorFlag(cmd)
			withVaultService(func(vaultService core.VaultService, _ *db.DB) {
				op := vaultService.Unpause
				if pause {
					op = vaultService.Pause
				}

				v, err := op(cmd.Context(), operator, vaultID)
				if err != nil {
					cmd.PrintErrln(use, err)
					return
				}

				printJSON(cmd, v)
			})
		},
	}
}

var vaultReserveFactorCmd = &cobra.Command{
	Use:   "reserve-factor <vault id> <factor>",
	Short: "set the reserve factor, e.g. 0.1",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		vaultID := vaultArg(args)
		factor, err := number.ToScaled(number.Decimal(args[1]), 9)
		if err != nil || factor > interest.Precision {
			panic("invalid reserve factor")
		}

		operator := operatorFlag(cmd)
		withVaultService(func(vaultService core.VaultService, _ *db.DB) {
			v, err := vaultService.SetReserveFactor(cmd.Context(), operator, vaultID, factor)
			if err != nil {
				cmd.PrintErrln("set reserve factor", err)
				return
			}

			printJSON(cmd, v)
		})
	},
}

var vaultWithdrawReservesCmd = &cobra.Command{
	Use:   "withdraw-reserves <vault id> <amount>",
	Short: "pay accumulated reserves to the vault owner",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		vaultID := vaultArg(args)
		amount, err := decimal.NewFromString(args[1])
		if err != nil || !amount.IsPositive() {
			panic("invalid amount")
		}

		value, err := number.ToScaled(amount, cfg.App.Decimals)
		if err != nil {
			panic(err)
		}

		operator := operatorFlag(cmd)
		withVaultService(func(vaultService core.VaultService, _ *db.DB) {
			receipt, err := vaultService.WithdrawReserves(cmd.Context(), operator, vaultID, value)
			if err != nil {
				cmd.PrintErrln("withdraw reserves", err)
				return
			}

			printJSON(cmd, receipt)
		})
	},
}

var vaultEventsCmd = &cobra.Command{
	Use:   "events <vault id>",
	Short: "list the latest vault events",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		vaultID := vaultArg(args)
		limit, _ := cmd.Flags().GetInt("limit")

		database := provideDatabase()
		defer database.Close()

		events, err := provideEventStore(database).ListByVault(cmd.Context(), vaultID, limit)
		if err != nil {
			cmd.PrintErrln("list events", err)
			return
		}

		printJSON(cmd, events)
	},
}

var vaultListCmd = &cobra.Command{
	Use:   "list",
	Short: "list vaults",
	Run: func(cmd *cobra.Command, args []string) {
		database := provideDatabase()
		defer database.Close()

		vaults, err := provideVaultStore(database).All(cmd.Context())
		if err != nil {
			cmd.PrintErrln("list vaults", err)
			return
		}

		if len(vaults) == 0 {
			cmd.PrintErrln(errors.New("no vaults"))
			return
		}

		printJSON(cmd, vaults)
	},
}

func init() {
	rootCmd.AddCommand(vaultCmd)
	vaultCmd.PersistentFlags().String("operator", "", "acting admin, defaults to the custody wallet")

	vaultInitCmd.Flags().StringP("asset", "a", "", "asset id")
	vaultInitCmd.Flags().String("owner", "", "vault owner, defaults to the operator")
	vaultInitCmd.Flags().String("pool", "", "pool allowed to borrow and repay, defaults to vault.pool")
	vaultInitCmd.Flags().String("reserve-factor", "", "reserve factor e.g. 0.1, defaults to vault.reserve_factor")
	vaultInitCmd.Flags().Bool("weighted", false, "weighted lock extension on top-ups, defaults to vault.weighted_extension")

	vaultEventsCmd.Flags().Int("limit", 50, "max events")

	vaultCmd.AddCommand(
		vaultInitCmd,
		vaultListCmd,
		vaultInfoCmd,
		vaultAccrueCmd,
		pauseCommand("pause", "pause a vault", true),
		pauseCommand("unpause", "resume a paused vault", false),
		vaultReserveFactorCmd,
		vaultWithdrawReservesCmd,
		vaultEventsCmd,
	)
}
