package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type imageUploader interface {
	Upload(ctx context.Context, file io.Reader, publicID string) (string, error)
	Delete(ctx context.Context, imageURL string) error
}

type cloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func newCloudinaryUploader(cloudinaryURL string) (*cloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &cloudinaryUploader{cld: cld, folder: "buildings"}, nil
}

// Upload stores file under publicID and returns its secure URL.
func (c *cloudinaryUploader) Upload(ctx context.Context, file io.Reader, publicID string) (string, error) {
	resp, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:    c.folder,
		PublicID:  publicID, // e.g. "building_12_1700000000"
		Overwrite: api.Bool(false),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

func (c *cloudinaryUploader) Delete(ctx context.Context, imageURL string) error {
	publicID, err := extractPublicIDFromURL(imageURL)
	if err != nil {
		return fmt.Errorf("failed to extract public ID: %w", err)
	}

	_, err = c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete photo from Cloudinary: %w", err)
	}
	return nil
}

// extractPublicIDFromURL returns the path after ".../upload/[v123/]"
// without its file extension.
func extractPublicIDFromURL(imageURL string) (string, error) {
	parsedURL, err := url.Parse(imageURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}

	pathParts := strings.Split(parsedURL.Path, "/")
	for i, part := range pathParts {
		if part == "upload" && i+1 < len(pathParts) {
			rest := pathParts[i+1:]
			if len(rest) > 1 && isVersionSegment(rest[0]) {
				rest = rest[1:]
			}
			id := strings.Join(rest, "/")
			if dot := strings.LastIndex(id, "."); dot > 0 {
				id = id[:dot]
			}
			return id, nil
		}
	}

	return "", errors.New("failed to extract public ID from URL")
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
