// Package main implements the cloud bucket bootstrap command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rollcall/internal/bucket"
)

var (
	bucketRegion  string
	bucketProject string
)

// bucketCmd groups the cloud bucket commands
var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Manage the cloud storage bucket for off-site export copies",
}

// bucketCreateCmd creates the bucket if it does not exist
var bucketCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create the configured cloud storage bucket",
	Long: `Creates the cloud storage bucket, defaulting to the configured
name, region and project. A bucket that already exists and is owned by the
caller is reported and left alone.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBucketCreate,
}

func init() {
	bucketCreateCmd.Flags().StringVar(&bucketRegion, "region", "", "bucket region (default from config)")
	bucketCreateCmd.Flags().StringVar(&bucketProject, "project", "", "cloud project ID (default from config)")

	bucketCmd.AddCommand(bucketCreateCmd)
	rootCmd.AddCommand(bucketCmd)
}

func runBucketCreate(cmd *cobra.Command, args []string) error {
	name := cfg.Bucket.Name
	if len(args) == 1 {
		name = args[0]
	}
	region := cfg.Bucket.Region
	if bucketRegion != "" {
		region = bucketRegion
	}
	project := cfg.Bucket.Project
	if bucketProject != "" {
		project = bucketProject
	}

	result, err := bucket.Create(cmd.Context(), project, name, region)
	switch result {
	case bucket.Created:
		fmt.Printf("Bucket %q created in %s\n", name, region)
		return nil
	case bucket.AlreadyOwned:
		fmt.Printf("Bucket %q already exists and is accessible\n", name)
		return nil
	case bucket.NameTaken:
		return fmt.Errorf("bucket name %q is already taken", name)
	default:
		return err
	}
}
