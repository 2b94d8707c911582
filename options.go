package cmdbridge

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// LoadOptions downloads a YAML document from URL and decodes it into target.
// URL can be any afs supported location, a local path included.
func LoadOptions(ctx context.Context, URL string, target interface{}) error {
	if URL == "" {
		return fmt.Errorf("options URL was empty")
	}
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to download options %v: %w", URL, err)
	}
	if err = yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode options %v: %w", URL, err)
	}
	return nil
}
