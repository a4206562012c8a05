package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"lendvault/worker"
	"lendvault/worker/accrual"
	"lendvault/worker/transfer"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "run accrual and transfer workers",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log := logger.FromContext(ctx)

		database := provideDatabase()
		defer database.Close()

		walletService := provideWalletService(provideWallet())
		vaultService := provideVaultService(database, provideCustody(database, walletService))

		accrualWorker, err := accrual.New(
			cfg.App.Location,
			cfg.Defaults.AccrueInterval,
			provideVaultStore(database),
			vaultService,
			providePropertyStore(database),
		)
		if err != nil {
			log.WithError(err).Fatalln("accrual worker")
		}

		transferWorker, err := transfer.New(cfg.App.Location, database, provideTransferStore(database), walletService)
		if err != nil {
			log.WithError(err).Fatalln("transfer worker")
		}

		jobs := []worker.Job{accrualWorker, transferWorker}
		for _, job := range jobs {
			if err := job.Start(); err != nil {
				log.WithError(err).Fatalln("start worker")
			}
		}

		log.Infoln("workers started")
		<-ctx.Done()

		for _, job := range jobs {
			_ = job.Stop()
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
