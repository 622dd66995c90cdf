package cmd

import (
	"fmt"

	"objectstore/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// pingCmd represents the ping command
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check connectivity to the storage service",
	Long:  `Performs a lightweight round trip to the storage service and reports whether it is reachable with the configured credentials.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, logg, err := newStorageClient(cmd)
		if err != nil {
			return err
		}

		endpoint := storage.Resolve(connectOptions(cmd)...).Endpoint
		if !client.IsConnected(cmd.Context()) {
			return fmt.Errorf("storage service at %s is not reachable", endpoint)
		}

		logg.Info("Storage service is reachable", zap.String("endpoint", endpoint))
		fmt.Println("OK")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(pingCmd)
}
