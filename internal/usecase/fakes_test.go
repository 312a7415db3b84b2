package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fairyhunter13/writing-compass/internal/domain"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Save(ctx domain.Context, r domain.StoredReport) (string, error) {
	args := m.Called(ctx, r)
	return args.String(0), args.Error(1)
}

func (m *mockRepo) Get(ctx domain.Context, id string) (domain.StoredReport, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.StoredReport), args.Error(1)
}

func (m *mockRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type mockEvents struct{ mock.Mock }

func (m *mockEvents) PublishReport(ctx domain.Context, ev domain.ReportEvent) error {
	return m.Called(ctx, ev).Error(0)
}

type mockGenerator struct{ mock.Mock }

func (m *mockGenerator) GenerateReport(ctx domain.Context, essay domain.EssayMetadata) (string, error) {
	args := m.Called(ctx, essay)
	return args.String(0), args.Error(1)
}

func (m *mockGenerator) SuggestParagraphs(ctx domain.Context, content string) (string, error) {
	args := m.Called(ctx, content)
	return args.String(0), args.Error(1)
}

type denyLimiter struct{ calls int }

func (d *denyLimiter) Allow(context.Context, string, int64) (bool, time.Duration, error) {
	d.calls++
	return false, 30 * time.Second, nil
}
