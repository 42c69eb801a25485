// Package bucket bootstraps the cloud storage bucket used for off-site
// copies of ledger exports. It is one-shot glue around the storage API:
// create the bucket if it does not exist, report how that went.
package bucket

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// CreateResult describes the outcome of a Create call.
type CreateResult string

const (
	// Created means the bucket was created by this call.
	Created CreateResult = "created"
	// AlreadyOwned means the bucket already exists and is accessible to the
	// caller; nothing was changed.
	AlreadyOwned CreateResult = "already_owned"
	// NameTaken means the bucket name is already in use by another owner.
	NameTaken CreateResult = "name_taken"
)

// newClient builds a storage client. ADC is preferred (service account or
// GOOGLE_APPLICATION_CREDENTIALS); explicit JSON can be supplied locally via
// GCS_CREDENTIALS_JSON.
func newClient(ctx context.Context) (*storage.Client, error) {
	if credJSON := os.Getenv("GCS_CREDENTIALS_JSON"); strings.TrimSpace(credJSON) != "" {
		return storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
	}
	return storage.NewClient(ctx)
}

// Create makes the named bucket in the given project and region. A bucket
// that already exists and is accessible to the caller is a non-event; a name
// held by someone else is reported as NameTaken alongside the API error.
func Create(ctx context.Context, projectID, name, region string) (CreateResult, error) {
	if projectID == "" {
		return "", errors.New("project ID is required")
	}
	if name == "" {
		return "", errors.New("bucket name is required")
	}

	client, err := newClient(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create storage client: %w", err)
	}
	defer client.Close()

	handle := client.Bucket(name)
	if _, err := handle.Attrs(ctx); err == nil {
		return AlreadyOwned, nil
	}

	attrs := &storage.BucketAttrs{Location: region}
	if err := handle.Create(ctx, projectID, attrs); err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusConflict {
			return NameTaken, fmt.Errorf("bucket name %q is already taken: %w", name, err)
		}
		return "", fmt.Errorf("failed to create bucket %q: %w", name, err)
	}
	return Created, nil
}
