package usecases

import (
	"context"
	"sync/atomic"
	"time"

	"apmdigest/internal/application/digest"
	"apmdigest/internal/domain/activity"
	apperrors "apmdigest/internal/shared/errors"
	"apmdigest/internal/shared/goroutine"
	"apmdigest/internal/shared/logger"
	"apmdigest/internal/shared/utils/logutil"
)

type SendDigestsCommand struct {
	Since time.Time
}

type SendDigestsResult struct {
	Records int
	Digests int
	Sent    int
	Failed  int
}

// SendDigestsUseCase fetches the changes since a watermark and mails one
// digest per recipient.
type SendDigestsUseCase struct {
	source   activity.ChangeSource
	composer *digest.Composer
	sender   Sender
	logger   logger.Interface
}

func NewSendDigestsUseCase(
	source activity.ChangeSource,
	composer *digest.Composer,
	sender Sender,
	logger logger.Interface,
) *SendDigestsUseCase {
	return &SendDigestsUseCase{
		source:   source,
		composer: composer,
		sender:   sender,
		logger:   logger,
	}
}

// Execute runs one batch. A fetch failure aborts the run; a failed send is
// logged and does not affect other recipients. Sends start as soon as each
// digest is rendered and Execute returns only after all of them finish.
func (uc *SendDigestsUseCase) Execute(ctx context.Context, cmd SendDigestsCommand) (*SendDigestsResult, error) {
	uc.logger.Infow("fetching changes", "since", cmd.Since.UTC().Format(time.RFC3339))

	records, err := uc.source.FetchSince(ctx, cmd.Since)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.NewFetchError("failed to fetch changes", err)
	}

	result := &SendDigestsResult{Records: len(records)}
	if len(records) == 0 {
		uc.logger.Infow("no changes since watermark")
		return result, nil
	}

	var sent, failed atomic.Int64
	group := goroutine.NewGroup(uc.logger)

	uc.composer.Compose(ctx, records, func(d digest.RenderedDigest) {
		result.Digests++
		group.Go("send-digest", func() {
			// a panicking sender still counts as a failure
			delivered := false
			defer func() {
				if delivered {
					sent.Add(1)
				} else {
					failed.Add(1)
				}
			}()

			if err := uc.sender.Send(ctx, d.Recipient, d.Subject, d.Body); err != nil {
				uc.logger.Errorw("failed to send digest",
					"recipient", logutil.MaskEmail(d.Recipient),
					"locale", d.Locale,
					"error", err,
				)
				return
			}
			delivered = true
			uc.logger.Debugw("digest sent",
				"recipient", logutil.MaskEmail(d.Recipient),
				"locale", d.Locale,
				"records", d.Records,
			)
		})
	})

	group.Wait()

	result.Sent = int(sent.Load())
	result.Failed = int(failed.Load())

	uc.logger.Infow("digest run complete",
		"records", result.Records,
		"digests", result.Digests,
		"sent", result.Sent,
		"failed", result.Failed,
	)

	return result, nil
}
