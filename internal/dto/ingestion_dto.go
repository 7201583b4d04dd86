package dto

import (
	"github.com/google/uuid"
)

// PublishDocumentChunksMessage is the payload the ingestion side publishes
// once a document has been parsed and chunked. This service only consumes it.
type PublishDocumentChunksMessage struct {
	FileId uuid.UUID `json:"file_id"`
	Chunks []string  `json:"chunks"`
}
