package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"

	"docvault/internal/cache"
	"docvault/internal/model"
)

const (
	jobStatusKeyPrefix = "ingestion:job:"
	jobStatusTTL       = 24 * time.Hour
)

// StatusReporter receives the terminal status of an ingestion job. The
// document service implements it.
type StatusReporter interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Document, error)
}

// IngestionService is the mock ingestion side: it tracks job statuses in an
// explicit Redis-backed store (rather than process memory, which would not
// survive a restart) and reports terminal statuses back to the document
// store.
type IngestionService interface {
	Trigger(ctx context.Context, documentID uuid.UUID) (model.DocumentStatus, error)
	Status(ctx context.Context, documentID uuid.UUID) (model.DocumentStatus, bool, error)
	Embeddings(documentID uuid.UUID) []string
}

type ingestionService struct {
	jobs     *cache.Client
	reporter StatusReporter
	delay    time.Duration
}

// NewIngestionService creates the mock ingestion service. delay is how long
// a job "processes" before reaching a terminal status.
func NewIngestionService(jobs *cache.Client, reporter StatusReporter, delay time.Duration) IngestionService {
	return &ingestionService{
		jobs:     jobs,
		reporter: reporter,
		delay:    delay,
	}
}

func jobKey(id uuid.UUID) string {
	return jobStatusKeyPrefix + id.String()
}

// Trigger marks the job as processing and completes it in the background.
// Roughly one in five jobs fails, mirroring an unreliable upstream.
func (s *ingestionService) Trigger(ctx context.Context, documentID uuid.UUID) (model.DocumentStatus, error) {
	if err := s.jobs.Set(ctx, jobKey(documentID), []byte(model.DocumentStatusProcessing), jobStatusTTL); err != nil {
		return "", fmt.Errorf("store job status: %w", err)
	}

	go s.complete(documentID)

	return model.DocumentStatusProcessing, nil
}

func (s *ingestionService) complete(documentID uuid.UUID) {
	time.Sleep(s.delay)

	status := model.DocumentStatusCompleted
	if rand.Float64() < 0.2 {
		status = model.DocumentStatusFailed
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.jobs.Set(ctx, jobKey(documentID), []byte(status), jobStatusTTL); err != nil {
		log.Printf("store job status for %s: %v", documentID, err)
	}

	if s.reporter != nil {
		if _, err := s.reporter.UpdateStatus(ctx, documentID, string(status)); err != nil {
			log.Printf("report job status for %s: %v", documentID, err)
		}
	}
}

// Status returns the tracked job status; found is false when the job is
// unknown or the store expired it.
func (s *ingestionService) Status(ctx context.Context, documentID uuid.UUID) (model.DocumentStatus, bool, error) {
	data, err := s.jobs.Get(ctx, jobKey(documentID))
	if err != nil || data == nil {
		return "", false, err
	}
	status, ok := model.ParseDocumentStatus(string(data))
	if !ok {
		return "", false, nil
	}
	return status, true, nil
}

// Embeddings returns a mock embedding vector for the document.
func (s *ingestionService) Embeddings(documentID uuid.UUID) []string {
	out := make([]string, 10)
	for i := range out {
		out[i] = strconv.FormatFloat(rand.Float64(), 'f', 4, 64)
	}
	return out
}
