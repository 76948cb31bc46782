package preview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"apmdigest/internal/application/digest"
	"apmdigest/internal/domain/activity"
	"apmdigest/internal/infrastructure/adapters"
	"apmdigest/internal/interfaces/cli/bootstrap"
	"apmdigest/internal/interfaces/cli/run"
	"apmdigest/internal/shared/biztime"
)

var (
	configPath string
	inputPath  string
	outputDir  string
	sinceFlag  string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render digests to HTML files without sending",
		Long:  `Render one HTML file per recipient from the live change source or from a saved statehistories JSON document.`,
		RunE:  runPreview,
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Read changes from a statehistories JSON file instead of the change source")
	cmd.Flags().StringVarP(&outputDir, "out", "o", "preview", "Directory to write the rendered digests to")
	cmd.Flags().StringVar(&sinceFlag, "since", "", "Override the watermark with an RFC 3339 timestamp")

	return cmd
}

func runPreview(cmd *cobra.Command, args []string) error {
	app, err := bootstrap.Load(configPath)
	if err != nil {
		return err
	}
	defer app.Close()

	records, err := loadRecords(cmd.Context(), app)
	if err != nil {
		return err
	}

	composer, err := app.Composer()
	if err != nil {
		return err
	}

	written, err := Write(cmd.Context(), composer, records, outputDir)
	if err != nil {
		return err
	}

	app.Logger.Infow("preview written", "dir", outputDir, "digests", len(written), "records", len(records))
	for _, path := range written {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

func loadRecords(ctx context.Context, app *bootstrap.App) ([]activity.ChangeRecord, error) {
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		return adapters.DecodeStateHistory(f)
	}

	since, err := run.Watermark(app, sinceFlag, biztime.NowUTC())
	if err != nil {
		return nil, err
	}
	source, err := app.ChangeSource()
	if err != nil {
		return nil, err
	}
	return source.FetchSince(ctx, since)
}

var fileNameReplacer = strings.NewReplacer("@", "_at_", "/", "_", "\\", "_", ":", "_")

// Write renders every digest into dir as "<recipient>.html" and returns the
// paths written, in recipient order.
func Write(ctx context.Context, composer *digest.Composer, records []activity.ChangeRecord, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var (
		written  []string
		writeErr error
	)
	composer.Compose(ctx, records, func(d digest.RenderedDigest) {
		if writeErr != nil {
			return
		}
		name := fileNameReplacer.Replace(d.Recipient)
		if name == "" {
			name = "unknown"
		}
		path := filepath.Join(dir, name+".html")
		if err := os.WriteFile(path, []byte(d.Body), 0o644); err != nil {
			writeErr = fmt.Errorf("failed to write %s: %w", path, err)
			return
		}
		written = append(written, path)
	})

	return written, writeErr
}
