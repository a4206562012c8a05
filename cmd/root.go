package cmd

import (
	"context"
	"fmt"
	"os"
	"path"

	"lendvault/config"
	"lendvault/core"

	"github.com/fox-one/pkg/logger"
	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yiplee/structs"
)

var (
	cfgFile     string
	cfg         core.Config
	debugMode   bool
	jsonLog     bool
	initialized bool
)

var rootCmd = cobra.Command{
	Use:   "lendvault",
	Short: "share based lending vaults",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// every command logs through the context entry
		entry := logrus.WithField("cmd", cmd.Name())
		cmd.SetContext(logger.WithContext(cmd.Context(), entry))
	},
}

func init() {
	cobra.OnInitialize(initConfig, initLogging, initDone)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file. default is ~/.lendvault.yaml")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable or disable debug model")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "log as json lines")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ver string) {
	rootCmd.Version = ver
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func initConfig() {
	if initialized {
		return
	}

	if cfgFile == "" {
		dir, err := homedir.Dir()
		if err != nil {
			panic(err)
		}

		filename := path.Join(dir, ".lendvault.yaml")
		if info, err := os.Stat(filename); err == nil && !info.IsDir() {
			cfgFile = filename
		}
	}

	if err := config.Load(cfgFile, &cfg); err != nil {
		logrus.WithError(err).Fatalln("load config", cfgFile)
	}
}

func initLogging() {
	if initialized {
		return
	}

	level := logrus.InfoLevel
	if debugMode {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)

	if jsonLog {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfgFile != "" {
		logrus.Debugln("use config file", cfgFile)
	}

	structs.DefaultTagName = "json"
}

func initDone() {
	initialized = true
}
