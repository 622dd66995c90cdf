package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var forceFlag bool

// bucketCmd represents the bucket command
var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Manage buckets",
}

// bucketMakeCmd represents the bucket make command
var bucketMakeCmd = &cobra.Command{
	Use:     "make NAME",
	Aliases: []string{"mb"},
	Short:   "Create a bucket",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newStorageClient(cmd)
		if err != nil {
			return err
		}
		if err := client.CreateBucket(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Bucket %s created\n", args[0])
		return nil
	},
}

// bucketListCmd represents the bucket ls command
var bucketListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List buckets",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newStorageClient(cmd)
		if err != nil {
			return err
		}
		infos, err := client.ListBuckets(cmd.Context())
		if err != nil {
			return err
		}
		for _, b := range infos {
			fmt.Printf("%s\t%s\n", b.CreatedAt.Format("2006-01-02 15:04:05"), b.Name)
		}
		return nil
	},
}

// bucketExistsCmd represents the bucket exists command
var bucketExistsCmd = &cobra.Command{
	Use:   "exists NAME",
	Short: "Check whether a bucket exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newStorageClient(cmd)
		if err != nil {
			return err
		}
		exists, err := client.BucketExists(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(exists)
		return nil
	},
}

// bucketRemoveCmd represents the bucket rm command
var bucketRemoveCmd = &cobra.Command{
	Use:     "rm NAME",
	Aliases: []string{"rb", "remove"},
	Short:   "Remove a bucket",
	Long:    `Removes a bucket. Removal of a non-empty bucket fails unless --force is given, in which case all contained objects are removed first.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newStorageClient(cmd)
		if err != nil {
			return err
		}
		if err := client.RemoveBucket(cmd.Context(), args[0], forceFlag); err != nil {
			return err
		}
		fmt.Printf("Bucket %s removed\n", args[0])
		return nil
	},
}

func init() {
	RootCmd.AddCommand(bucketCmd)
	bucketCmd.AddCommand(bucketMakeCmd, bucketListCmd, bucketExistsCmd, bucketRemoveCmd)

	bucketRemoveCmd.Flags().BoolVar(&forceFlag, "force", false, "Remove all objects in the bucket first")
}
