package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// VectorStore holds embedded resume chunks so the evaluator can pull the
// parts of the resume relevant to each question.
type VectorStore interface {
	InitCollection() error
	UpsertResumeChunk(ctx context.Context, docID string, chunkIndex int, text string, embedding []float32) error
	SearchResumeContext(ctx context.Context, queryEmbedding []float32, docID string, limit int) ([]ResumeChunk, error)
	DeleteResume(ctx context.Context, docID string) error
}

type ResumeChunk struct {
	DocID string
	Index int
	Score float32
	Text  string
}

type qdrantStore struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantStore(urlStr, apiKey, collectionName string) (VectorStore, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, not the REST one
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantStore{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements VectorStore.
func (q *qdrantStore) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// UpsertResumeChunk implements VectorStore.
func (q *qdrantStore) UpsertResumeChunk(ctx context.Context, docID string, chunkIndex int, text string, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"doc_id": docID,
			"chunk":  chunkIndex,
			"text":   text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchResumeContext implements VectorStore.
func (q *qdrantStore) SearchResumeContext(ctx context.Context, queryEmbedding []float32, docID string, limit int) ([]ResumeChunk, error) {
	var filter *qdrant.Filter
	if docID != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("doc_id", docID),
			},
		}
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var chunks []ResumeChunk
	for _, point := range points {
		chunk := ResumeChunk{Score: point.Score}

		if v, ok := point.Payload["doc_id"]; ok {
			if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				chunk.DocID = s.StringValue
			}
		}
		if v, ok := point.Payload["text"]; ok {
			if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				chunk.Text = s.StringValue
			}
		}
		if v, ok := point.Payload["chunk"]; ok {
			if n, ok := v.GetKind().(*qdrant.Value_IntegerValue); ok {
				chunk.Index = int(n.IntegerValue)
			}
		}

		chunks = append(chunks, chunk)
	}

	return chunks, nil
}

// DeleteResume implements VectorStore.
func (q *qdrantStore) DeleteResume(ctx context.Context, docID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("doc_id", docID),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete resume chunks: %w", err)
	}

	return nil
}

// FormatResumeContext renders search hits into a prompt section.
func FormatResumeContext(chunks []ResumeChunk) string {
	if len(chunks) == 0 {
		return ""
	}

	var parts []string
	for i, chunk := range chunks {
		parts = append(parts, fmt.Sprintf("--- Resume excerpt %d (Score: %.2f) ---\n%s",
			i+1, chunk.Score, strings.TrimSpace(chunk.Text)))
	}

	return strings.Join(parts, "\n\n")
}
