package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lendvault/handler"
	"lendvault/handler/hc"
	"lendvault/pkg/sysversion"
	"lendvault/service/clock"
	"lendvault/worker/accrual"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run lendvault api server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		database := provideDatabase()
		defer database.Close()

		walletService := provideWalletService(provideWallet())
		custody := provideCustody(database, walletService)
		vaultService := provideVaultService(database, custody)
		propertyStore := providePropertyStore(database)

		if outdated, err := sysversion.Outdated(ctx, propertyStore); err != nil {
			logger.FromContext(ctx).WithError(err).Fatalln("read sysversion")
		} else if outdated {
			logger.FromContext(ctx).Warnln("database schema is outdated, run migrate")
		}

		svr := handler.New(
			provideConfig(),
			provideSession(),
			provideVaultStore(database),
			provideEventStore(database),
			vaultService,
			walletService,
			clock.System(),
		)

		mux := chi.NewMux()
		mux.Use(middleware.Recoverer)
		mux.Use(middleware.StripSlashes)
		mux.Use(cors.AllowAll().Handler)
		mux.Use(logger.WithRequestID)
		mux.Use(middleware.Logger)
		mux.Use(middleware.NewCompressor(5).Handler)

		{
			//hc
			mux.Mount("/hc", hc.Handle(rootCmd.Version, propertyStore, accrual.CheckpointKey))
		}

		{
			//restful api
			mux.Mount("/api", svr.HandleRestAPI())
		}

		port, _ := cmd.Flags().GetInt("port")
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			<-ctx.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}
		}()

		logrus.Infoln("serve at", addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 9000, "server port")
}
