package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is one embedded slice of an ingested document.
type DocumentChunk struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	Filename   string
	DocType    string
	ChunkIndex int
	Content    string
	Embedding  []float32
	CreatedAt  time.Time
}
