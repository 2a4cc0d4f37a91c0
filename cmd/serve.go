package cmd

import (
	"github.com/spf13/cobra"

	"wayforpay/internal"
	"wayforpay/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP facade",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := internal.NewLogger("internal", debug, nil)

		conf, err := loadConfig()
		if err != nil {
			logger.Error("boot", err)
			return err
		}

		var mongo services.Database
		if conf.Mongo.Enabled {
			mongo, err = internal.NewMongoClient(conf)
			if err != nil {
				logger.Error("mongo client", err)
				return err
			}
			logger.Info("mongo client initialized")
		}

		client, err := internal.NewClientFromConfig(conf)
		if err != nil {
			logger.Error("client", err)
			return err
		}
		client.SetLogger(internal.NewLogger("client", conf.IsDebug, mongo))
		client.SetDatabase(mongo)

		server := internal.NewServer(conf)
		server.SetLogger(internal.NewLogger("server", conf.IsDebug, mongo))
		server.SetGateway(client)
		server.SetDatabase(mongo)

		if err = server.Start(); err != nil {
			logger.Error("server start", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
