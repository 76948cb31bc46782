package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"apmdigest/internal/domain/activity"
	apperrors "apmdigest/internal/shared/errors"
	"apmdigest/internal/shared/logger"
)

const subject = "Daily Digest of Audio Project Manager Activity"

func TestSendDigests_OneMailPerRecipient(t *testing.T) {
	source := &mockChangeSource{
		FetchSinceFunc: func(ctx context.Context, since time.Time) ([]activity.ChangeRecord, error) {
			return []activity.ChangeRecord{
				change("alice@example.org", "1:1"),
				change("alice@example.org", "1:2"),
				change("bob@example.org", "2:1"),
			}, nil
		},
	}
	sender := new(mockSender)
	sender.On("Send", mock.Anything, "alice@example.org", subject,
		"<main><day><hour><pp><row>1:1</row><row>1:2</row></pp></hour></day></main>").Return(nil)
	sender.On("Send", mock.Anything, "bob@example.org", subject,
		"<main><day><hour><pp><row>2:1</row></pp></hour></day></main>").Return(nil)

	uc := NewSendDigestsUseCase(source, newTestComposer(), sender, logger.NewNopLogger())
	result, err := uc.Execute(context.Background(), SendDigestsCommand{Since: time.Now()})

	require.NoError(t, err)
	assert.Equal(t, &SendDigestsResult{Records: 3, Digests: 2, Sent: 2}, result)
	sender.AssertExpectations(t)
}

func TestSendDigests_EmptyInputSendsNothing(t *testing.T) {
	sender := new(mockSender)

	uc := NewSendDigestsUseCase(&mockChangeSource{}, newTestComposer(), sender, logger.NewNopLogger())
	result, err := uc.Execute(context.Background(), SendDigestsCommand{Since: time.Now()})

	require.NoError(t, err)
	assert.Equal(t, &SendDigestsResult{}, result)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendDigests_SendFailureIsIsolated(t *testing.T) {
	source := &mockChangeSource{
		FetchSinceFunc: func(ctx context.Context, since time.Time) ([]activity.ChangeRecord, error) {
			return []activity.ChangeRecord{
				change("alice@example.org", "1:1"),
				change("bob@example.org", "2:1"),
				change("carol@example.org", "3:1"),
			}, nil
		},
	}
	sender := new(mockSender)
	sender.On("Send", mock.Anything, "bob@example.org", mock.Anything, mock.Anything).
		Return(errors.New("mailbox unavailable"))
	sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	uc := NewSendDigestsUseCase(source, newTestComposer(), sender, logger.NewNopLogger())
	result, err := uc.Execute(context.Background(), SendDigestsCommand{Since: time.Now()})

	require.NoError(t, err)
	assert.Equal(t, 3, result.Digests)
	assert.Equal(t, 2, result.Sent)
	assert.Equal(t, 1, result.Failed)
	sender.AssertNumberOfCalls(t, "Send", 3)
}

func TestSendDigests_PanickingSendCountsAsFailure(t *testing.T) {
	source := &mockChangeSource{
		FetchSinceFunc: func(ctx context.Context, since time.Time) ([]activity.ChangeRecord, error) {
			return []activity.ChangeRecord{
				change("alice@example.org", "1:1"),
				change("bob@example.org", "2:1"),
			}, nil
		},
	}
	sender := &funcSender{
		SendFunc: func(ctx context.Context, to, subject, htmlBody string) error {
			if to == "bob@example.org" {
				panic("smtp exploded")
			}
			return nil
		},
	}

	uc := NewSendDigestsUseCase(source, newTestComposer(), sender, logger.NewNopLogger())
	result, err := uc.Execute(context.Background(), SendDigestsCommand{Since: time.Now()})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Digests)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, result.Digests, result.Sent+result.Failed)
}

func TestSendDigests_FetchError(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "plain error is wrapped", err: errors.New("connection refused")},
		{name: "fetch error passes through", err: apperrors.NewFetchError("unexpected status code 502", nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotSince time.Time
			source := &mockChangeSource{
				FetchSinceFunc: func(ctx context.Context, since time.Time) ([]activity.ChangeRecord, error) {
					gotSince = since
					return nil, tt.err
				},
			}
			sender := new(mockSender)
			since := time.Date(2024, 3, 3, 15, 0, 0, 0, time.UTC)

			uc := NewSendDigestsUseCase(source, newTestComposer(), sender, logger.NewNopLogger())
			result, err := uc.Execute(context.Background(), SendDigestsCommand{Since: since})

			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, apperrors.IsFetchError(err))
			assert.Equal(t, since, gotSince)
			sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
