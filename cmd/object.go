package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"objectstore/core/storage"

	"github.com/spf13/cobra"
)

var (
	contentTypeFlag string
	metaFlags       []string
	tagFlags        []string
	prefixFlag      string
	expiresFlag     time.Duration
)

// objectCmd represents the object command
var objectCmd = &cobra.Command{
	Use:   "object",
	Short: "Manage objects",
}

// objectPutCmd represents the object put command
var objectPutCmd = &cobra.Command{
	Use:   "put BUCKET KEY [FILE]",
	Short: "Upload an object",
	Long:  `Uploads a file (or stdin when FILE is omitted) as a whole object. Metadata and tags can be attached with repeated --meta and --tag flags.`,
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newStorageClient(cmd)
		if err != nil {
			return err
		}

		var data []byte
		if len(args) == 3 {
			data, err = os.ReadFile(args[2])
			if err != nil {
				return fmt.Errorf("failed to read input file: %w", err)
			}
		} else {
			data, err = io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
		}

		metadata, err := parseKeyValues(metaFlags)
		if err != nil {
			return err
		}
		tags, err := parseKeyValues(tagFlags)
		if err != nil {
			return err
		}

		result, err := client.UploadBytes(cmd.Context(), args[0], args[1], data, storage.UploadOptions{
			ContentType: contentTypeFlag,
			Metadata:    metadata,
			Tags:        tags,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded %s/%s (etag %s)\n", args[0], args[1], result.ETag)
		return nil
	},
}

// objectGetCmd represents the object get command
var objectGetCmd = &cobra.Command{
	Use:   "get BUCKET KEY [FILE]",
	Short: "Download an object",
	Long:  `Downloads the full object payload to a file, or to stdout when FILE is omitted.`,
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newStorageClient(cmd)
		if err != nil {
			return err
		}

		data, _, err := client.Download(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		if len(args) == 3 {
			if err := os.WriteFile(args[2], data, 0644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			fmt.Printf("Downloaded %s/%s to %s (%d bytes)\n", args[0], args[1], args[2], len(data))
			return nil
		}

		_, err = os.Stdout.Write(data)
		return err
	},
}

// objectListCmd represents the object ls command
var objectListCmd = &cobra.Command{
	Use:     "ls BUCKET",
	Aliases: []string{"list"},
	Short:   "List objects in a bucket",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newStorageClient(cmd)
		if err != nil {
			return err
		}
		infos, err := client.ListObjects(cmd.Context(), args[0], prefixFlag)
		if err != nil {
			return err
		}
		for _, obj := range infos {
			fmt.Printf("%s\t%10d\t%s\n", obj.LastModified.Format("2006-01-02 15:04:05"), obj.Size, obj.Key)
		}
		return nil
	},
}

// objectStatCmd represents the object stat command
var objectStatCmd = &cobra.Command{
	Use:   "stat BUCKET KEY",
	Short: "Show object metadata",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newStorageClient(cmd)
		if err != nil {
			return err
		}
		stat, err := client.StatObject(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(stat, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

// objectRemoveCmd represents the object rm command
var objectRemoveCmd = &cobra.Command{
	Use:     "rm BUCKET KEY...",
	Aliases: []string{"remove"},
	Short:   "Remove one or more objects",
	Long:    `Removes the given keys. With multiple keys a batch removal is performed; failures are reported per key and removal is not atomic.`,
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newStorageClient(cmd)
		if err != nil {
			return err
		}
		bucket, keys := args[0], args[1:]

		if len(keys) == 1 {
			if err := client.RemoveObject(cmd.Context(), bucket, keys[0]); err != nil {
				return err
			}
			fmt.Printf("Removed %s/%s\n", bucket, keys[0])
			return nil
		}

		failed := client.RemoveObjects(cmd.Context(), bucket, keys)
		for _, f := range failed {
			fmt.Printf("Failed to remove %s/%s: %v\n", bucket, f.Key, f.Err)
		}
		fmt.Printf("Removed %d of %d objects\n", len(keys)-len(failed), len(keys))
		if len(failed) > 0 {
			return fmt.Errorf("%d of %d removals failed", len(failed), len(keys))
		}
		return nil
	},
}

// objectCopyCmd represents the object cp command
var objectCopyCmd = &cobra.Command{
	Use:     "cp SRC_BUCKET SRC_KEY DST_BUCKET [DST_KEY]",
	Aliases: []string{"copy"},
	Short:   "Copy an object server-side",
	Args:    cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newStorageClient(cmd)
		if err != nil {
			return err
		}
		dstKey := args[1]
		if len(args) == 4 {
			dstKey = args[3]
		}
		result, err := client.Copy(cmd.Context(), args[0], args[1], args[2], dstKey)
		if err != nil {
			return err
		}
		fmt.Printf("Copied %s/%s to %s/%s (etag %s)\n", args[0], args[1], args[2], dstKey, result.ETag)
		return nil
	},
}

// objectPresignCmd represents the object presign command
var objectPresignCmd = &cobra.Command{
	Use:   "presign BUCKET KEY",
	Short: "Generate a presigned download URL",
	Long:  `Generates a time-limited URL granting read access to an object without credentials. The service caps expiry at seven days.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newStorageClient(cmd)
		if err != nil {
			return err
		}
		url, err := client.PresignedGetURL(cmd.Context(), args[0], args[1], expiresFlag)
		if err != nil {
			return err
		}
		fmt.Println(url)
		return nil
	},
}

// parseKeyValues turns repeated "key=value" flags into a map.
func parseKeyValues(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	m := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid key=value pair: %q", pair)
		}
		m[k] = v
	}
	return m, nil
}

func init() {
	RootCmd.AddCommand(objectCmd)
	objectCmd.AddCommand(objectPutCmd, objectGetCmd, objectListCmd, objectStatCmd, objectRemoveCmd, objectCopyCmd, objectPresignCmd)

	objectPutCmd.Flags().StringVar(&contentTypeFlag, "content-type", "", "Content type of the payload")
	objectPutCmd.Flags().StringArrayVar(&metaFlags, "meta", nil, "User metadata as key=value (repeatable)")
	objectPutCmd.Flags().StringArrayVar(&tagFlags, "tag", nil, "Object tags as key=value (repeatable)")
	objectListCmd.Flags().StringVar(&prefixFlag, "prefix", "", "Filter keys by prefix")
	objectPresignCmd.Flags().DurationVar(&expiresFlag, "expires", time.Hour, "URL validity duration")
}
