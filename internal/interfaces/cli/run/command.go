package run

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"apmdigest/internal/application/digest/usecases"
	"apmdigest/internal/domain/activity"
	"apmdigest/internal/infrastructure/email"
	"apmdigest/internal/interfaces/cli/bootstrap"
	"apmdigest/internal/shared/biztime"
)

var (
	configPath string
	sinceFlag  string
	dryRun     bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Send the activity digests",
		Long:  `Fetch the passage state changes since the lookback window and mail one localized digest to each recipient.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVar(&sinceFlag, "since", "", "Override the watermark with an RFC 3339 timestamp")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render digests and log them without sending")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	app, err := bootstrap.Load(configPath)
	if err != nil {
		return err
	}
	defer app.Close()

	since, err := Watermark(app, sinceFlag, biztime.NowUTC())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, err := app.ChangeSource()
	if err != nil {
		return err
	}

	composer, err := app.Composer()
	if err != nil {
		return err
	}

	sender := email.NewSender(app.Config.Email, app.Config.API, dryRun, app.Logger.Named("email"))

	uc := usecases.NewSendDigestsUseCase(source, composer, sender, app.Logger.Named("digest"))
	result, err := uc.Execute(ctx, usecases.SendDigestsCommand{Since: since})
	if err != nil {
		app.Logger.Errorw("digest run failed", "error", err)
		return err
	}

	if result.Failed > 0 {
		app.Logger.Warnw("some digests were not delivered", "failed", result.Failed, "sent", result.Sent)
	}
	return nil
}

// Watermark returns the explicit since timestamp when given, otherwise now
// minus the configured lookback.
func Watermark(app *bootstrap.App, since string, now time.Time) (time.Time, error) {
	if since == "" {
		return app.Since(now), nil
	}
	t, err := activity.ParseTimestamp(since)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --since: %w", err)
	}
	return t, nil
}
