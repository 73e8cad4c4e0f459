package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"contentsage-api/core/domain"
	"contentsage-api/core/interfaces"
)

// stubEnrichment records which batches ran. A non-nil block channel
// holds metadata batches until it is closed.
type stubEnrichment struct {
	mu            sync.Mutex
	metadataCalls [][]string
	colorCalls    [][]string
	block         chan struct{}
}

func (s *stubEnrichment) ExtractMetadata(ctx context.Context, url string) (*interfaces.MetadataResult, error) {
	return nil, nil
}

func (s *stubEnrichment) ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*interfaces.MetadataResult {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metadataCalls = append(s.metadataCalls, urls)
	return map[string]*interfaces.MetadataResult{}
}

func (s *stubEnrichment) ExtractColor(ctx context.Context, imageURL string) (*domain.RGBColor, error) {
	return nil, nil
}

func (s *stubEnrichment) ExtractColorBatch(ctx context.Context, imageURLs []string) map[string]*domain.RGBColor {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.colorCalls = append(s.colorCalls, imageURLs)
	return map[string]*domain.RGBColor{}
}

func TestSubmitBeforeStartFails(t *testing.T) {
	w := NewEnrichmentWorker(&stubEnrichment{}, WorkerConfig{})

	err := w.SubmitJob(&EnrichmentJob{Type: JobTypeMetadata})
	if err != ErrWorkerNotRunning {
		t.Errorf("err = %v, want ErrWorkerNotRunning", err)
	}
}

func TestProcessesMetadataJob(t *testing.T) {
	stub := &stubEnrichment{}
	w := NewEnrichmentWorker(stub, WorkerConfig{MaxWorkers: 2, QueueSize: 4})

	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	resultCh := make(chan interface{}, 1)
	err := w.SubmitJob(&EnrichmentJob{
		Type:     JobTypeMetadata,
		URLs:     []string{"https://example.com/a"},
		Context:  context.Background(),
		ResultCh: resultCh,
	})
	if err != nil {
		t.Fatalf("SubmitJob failed: %v", err)
	}

	select {
	case <-resultCh:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not complete")
	}

	if err := w.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	stub.mu.Lock()
	defer stub.mu.Unlock()
	if len(stub.metadataCalls) != 1 {
		t.Errorf("metadataCalls = %d, want 1", len(stub.metadataCalls))
	}
}

func TestWarmColorsRunsBatch(t *testing.T) {
	stub := &stubEnrichment{}
	w := NewEnrichmentWorker(stub, WorkerConfig{MaxWorkers: 1, QueueSize: 4})

	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	w.WarmColors(context.Background(), []string{"https://example.com/t.jpg"})

	if err := w.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	stub.mu.Lock()
	defer stub.mu.Unlock()
	if len(stub.colorCalls) != 1 {
		t.Errorf("colorCalls = %d, want 1", len(stub.colorCalls))
	}
}

func TestStartTwiceIsNoop(t *testing.T) {
	w := NewEnrichmentWorker(&stubEnrichment{}, WorkerConfig{MaxWorkers: 1})

	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("second Start failed: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
}

func TestSubmitRacingStopDoesNotPanic(t *testing.T) {
	stub := &stubEnrichment{block: make(chan struct{})}
	w := NewEnrichmentWorker(stub, WorkerConfig{MaxWorkers: 1, QueueSize: 1})

	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// First job occupies the single worker, second fills the queue.
	for _, url := range []string{"https://example.com/a", "https://example.com/b"} {
		err := w.SubmitJob(&EnrichmentJob{Type: JobTypeMetadata, URLs: []string{url}})
		if err != nil {
			t.Fatalf("SubmitJob failed: %v", err)
		}
	}

	// Third submit blocks on the full queue while Stop runs.
	panicked := make(chan interface{}, 1)
	submitted := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				panicked <- r
			}
		}()
		submitted <- w.SubmitJob(&EnrichmentJob{Type: JobTypeMetadata, URLs: []string{"https://example.com/c"}})
	}()
	time.Sleep(50 * time.Millisecond)

	stopped := make(chan error, 1)
	go func() { stopped <- w.Stop() }()

	close(stub.block)

	select {
	case r := <-panicked:
		t.Fatalf("SubmitJob panicked during Stop: %v", r)
	case err := <-submitted:
		if err != nil && err != ErrWorkerNotRunning {
			t.Fatalf("SubmitJob failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("SubmitJob did not return")
	}

	select {
	case err := <-stopped:
		if err != nil {
			t.Fatalf("Stop failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}

	stub.mu.Lock()
	defer stub.mu.Unlock()
	if len(stub.metadataCalls) < 2 {
		t.Errorf("metadataCalls = %d, want the queued jobs drained", len(stub.metadataCalls))
	}
}

func TestStopWithoutStart(t *testing.T) {
	w := NewEnrichmentWorker(&stubEnrichment{}, WorkerConfig{})
	if err := w.Stop(); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}
