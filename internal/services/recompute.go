package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"jobcompass/related-jobs/internal/models"
	"jobcompass/related-jobs/internal/repositories"
)

// RecomputeService rebuilds the related-jobs index from the latest corpus
// snapshot. Run is idempotent and all-or-nothing: any failure leaves the
// previously published bundle serving.
type RecomputeService interface {
	Run(ctx context.Context) error
	Start(ctx context.Context)
	Stop()
}

type recomputeService struct {
	jobRepo  repositories.JobRepository
	builder  DocumentBuilder
	store    IndexStore
	interval time.Duration
	relatedK int

	wg       sync.WaitGroup
	stopChan chan struct{}
}

func NewRecomputeService(
	jobRepo repositories.JobRepository,
	builder DocumentBuilder,
	store IndexStore,
	interval time.Duration,
	relatedK int,
) RecomputeService {
	if relatedK <= 0 {
		relatedK = DefaultRelatedJobs
	}
	return &recomputeService{
		jobRepo:  jobRepo,
		builder:  builder,
		store:    store,
		interval: interval,
		relatedK: relatedK,
		stopChan: make(chan struct{}),
	}
}

// Run implements RecomputeService. Fetch, vectorize, rank, persist, publish.
func (r *recomputeService) Run(ctx context.Context) error {
	started := time.Now()
	log.Println("🔄 Starting related-jobs recomputation...")

	jobs, err := r.jobRepo.FetchOpenJobs()
	if err != nil {
		return fmt.Errorf("recompute: %w", err)
	}
	if len(jobs) == 0 {
		return fmt.Errorf("recompute: no open jobs fetched")
	}
	log.Printf("📋 Fetched %d open jobs\n", len(jobs))

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("recompute: %w", err)
	}

	docs := make([]string, len(jobs))
	for i := range jobs {
		docs[i] = r.builder.BuildDocument(jobs[i])
	}

	vectorizer := NewTfidfVectorizer()
	matrix, err := vectorizer.Fit(docs)
	if err != nil {
		return fmt.Errorf("recompute: %w", err)
	}
	log.Printf("📐 Fitted vectorizer: %d jobs × %d terms\n",
		len(matrix), len(vectorizer.Model().Vocabulary))

	bundle := &models.IndexBundle{
		Version:    uuid.New().String(),
		BuiltAt:    time.Now(),
		Jobs:       jobs,
		Vectorizer: vectorizer.Model(),
		Matrix:     matrix,
	}
	bundle.Related = buildRelatedExport(bundle, r.relatedK)

	if err := r.store.Publish(bundle); err != nil {
		return fmt.Errorf("recompute: %w", err)
	}

	log.Printf("✅ Published index bundle %s in %s\n",
		bundle.Version, time.Since(started).Round(time.Millisecond))
	return nil
}

// Start implements RecomputeService. One run fires immediately, then the
// cycle repeats on the configured interval until Stop.
func (r *recomputeService) Start(ctx context.Context) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		if err := r.Run(ctx); err != nil {
			log.Printf("❌ Initial recomputation failed: %v\n", err)
		}

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-r.stopChan:
				log.Println("🔄 Recompute scheduler stopped")
				return
			case <-ticker.C:
				if err := r.Run(ctx); err != nil {
					// Stale-but-available beats unavailable: the previous
					// bundle keeps serving until the next successful cycle.
					log.Printf("❌ Scheduled recomputation failed: %v\n", err)
				}
			}
		}
	}()

	log.Printf("🚀 Recompute scheduler started (interval %s)\n", r.interval)
}

// Stop implements RecomputeService.
func (r *recomputeService) Stop() {
	close(r.stopChan)
	r.wg.Wait()
}

// buildRelatedExport derives the lightweight {job ID → top-K related IDs}
// map, one hybrid row at a time.
func buildRelatedExport(bundle *models.IndexBundle, k int) map[string][]string {
	related := make(map[string][]string, len(bundle.Jobs))
	for pos := range bundle.Jobs {
		row := hybridRow(bundle, pos)
		related[bundle.Jobs[pos].JobID] = jobIDsAt(bundle, topKIndices(row, map[int]bool{pos: true}, k))
	}
	return related
}
