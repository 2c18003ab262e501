package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docvault/internal/model"
)

type fakeReporter struct {
	reports chan string
}

func (f *fakeReporter) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Document, error) {
	f.reports <- status
	return &model.Document{ID: id, Status: model.DocumentStatus(status)}, nil
}

func TestIngestionService_Trigger(t *testing.T) {
	reporter := &fakeReporter{reports: make(chan string, 1)}
	svc := NewIngestionService(nil, reporter, 10*time.Millisecond)

	status, err := svc.Trigger(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, model.DocumentStatusProcessing, status)

	select {
	case reported := <-reporter.reports:
		// Terminal status lands on the document store out-of-band.
		parsed, ok := model.ParseDocumentStatus(reported)
		assert.True(t, ok)
		assert.Contains(t, []model.DocumentStatus{model.DocumentStatusCompleted, model.DocumentStatusFailed}, parsed)
	case <-time.After(2 * time.Second):
		t.Fatal("terminal status was never reported")
	}
}

func TestIngestionService_StatusUnknownJob(t *testing.T) {
	svc := NewIngestionService(nil, nil, time.Millisecond)

	_, found, err := svc.Status(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestIngestionService_Embeddings(t *testing.T) {
	svc := NewIngestionService(nil, nil, time.Millisecond)

	embeddings := svc.Embeddings(uuid.New())
	assert.Len(t, embeddings, 10)
	for _, v := range embeddings {
		assert.NotEmpty(t, v)
	}
}
