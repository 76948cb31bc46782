package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"apmdigest/internal/application/digest"
	"apmdigest/internal/domain/activity"
	"apmdigest/internal/domain/localization"
)

type mockChangeSource struct {
	FetchSinceFunc func(ctx context.Context, since time.Time) ([]activity.ChangeRecord, error)
}

func (m *mockChangeSource) FetchSince(ctx context.Context, since time.Time) ([]activity.ChangeRecord, error) {
	if m.FetchSinceFunc != nil {
		return m.FetchSinceFunc(ctx, since)
	}
	return nil, nil
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

type funcSender struct {
	SendFunc func(ctx context.Context, to, subject, htmlBody string) error
}

func (f *funcSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	return f.SendFunc(ctx, to, subject, htmlBody)
}

type defaultResolver struct{}

func (defaultResolver) Resolve(context.Context, string) localization.Catalog {
	return localization.Default()
}

func newTestComposer() *digest.Composer {
	templates := digest.Templates{
		Main:     "<main>{daterows}</main>",
		Date:     "<day>{hourrows}</day>",
		Hour:     "<hour>{projplanrows}</hour>",
		ProjPlan: "<pp>{datarows}</pp>",
		Headers:  "",
		Row:      "<row>{Passage}</row>",
	}
	now := func() time.Time { return time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC) }
	return digest.NewComposer(digest.NewRenderer(templates, digest.Links{}), defaultResolver{}, now)
}

func change(email, passage string) activity.ChangeRecord {
	return activity.ChangeRecord{
		Email:   email,
		Project: "Genesis",
		Plan:    "Genesis Plan",
		Passage: passage,
		State:   "done",
		Updated: activity.Timestamp{Time: time.Date(2024, 3, 4, 15, 10, 0, 0, time.UTC)},
	}
}
