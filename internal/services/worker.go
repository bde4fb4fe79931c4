package services

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/Banoth-Rajesham/ai-interview-app/internal/repositories"
)

// IngestionWorker pushes uploaded resumes into the vector store in the
// background: chunk, embed, upsert. Interviews never wait on it; a resume
// that has not finished ingesting simply yields less evaluation context.
type IngestionWorker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueResume(docID uuid.UUID)
}

type ingestionWorker struct {
	docRepo     repositories.DocumentRepository
	gemini      GeminiService
	vectors     VectorStore
	chunker     TextChunker
	jobQueue    chan uuid.UUID
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewIngestionWorker(
	docRepo repositories.DocumentRepository,
	gemini GeminiService,
	vectors VectorStore,
	concurrency int,
) IngestionWorker {
	return &ingestionWorker{
		docRepo:     docRepo,
		gemini:      gemini,
		vectors:     vectors,
		chunker:     NewTextChunker(),
		jobQueue:    make(chan uuid.UUID, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements IngestionWorker.
func (w *ingestionWorker) Start(ctx context.Context) {
	log.Printf("🚀 Starting resume ingestion worker with %d workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements IngestionWorker.
func (w *ingestionWorker) Stop() {
	log.Println("🛑 Stopping ingestion worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Ingestion worker stopped")
}

// EnqueueResume implements IngestionWorker.
func (w *ingestionWorker) EnqueueResume(docID uuid.UUID) {
	select {
	case w.jobQueue <- docID:
		log.Printf("📥 Resume %s enqueued for ingestion\n", docID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue resume %s\n", docID)
	}
}

func (w *ingestionWorker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Ingestion worker #%d stopped\n", workerID)
			return
		case docID := <-w.jobQueue:
			if err := w.ingestResume(ctx, docID); err != nil {
				log.Printf("❌ Worker #%d failed to ingest resume %s: %v\n", workerID, docID, err)
			} else {
				log.Printf("✅ Worker #%d ingested resume %s\n", workerID, docID)
			}
		}
	}
}

func (w *ingestionWorker) ingestResume(ctx context.Context, docID uuid.UUID) error {
	doc, err := w.docRepo.FindByID(docID)
	if err != nil {
		return err
	}

	if doc.ExtractedText == "" {
		log.Printf("⚠️  Resume %s has no extracted text, skipping ingestion\n", docID)
		return nil
	}

	chunks := w.chunker.ChunkText(doc.ExtractedText, 1000, 100)
	for i, chunk := range chunks {
		embedding, err := w.gemini.GenerateEmbedding(ctx, chunk)
		if err != nil {
			log.Printf("⚠️  Failed to embed chunk %d of resume %s: %v\n", i, docID, err)
			continue
		}

		if err := w.vectors.UpsertResumeChunk(ctx, docID.String(), i, chunk, embedding); err != nil {
			log.Printf("⚠️  Failed to upsert chunk %d of resume %s: %v\n", i, docID, err)
		}
	}

	return w.docRepo.MarkIngested(docID)
}
