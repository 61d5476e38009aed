package dto

type IngestRequest struct {
	Texts []string `json:"texts" validate:"required"`
}

type IngestResponse struct {
	Status string `json:"status"`
	Chunks int    `json:"chunks"`
}

type IngestErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// PublishIngestedMessage is the payload carried on the in-process bus after
// a successful index rebuild.
type PublishIngestedMessage struct {
	IngestionID string `json:"ingestion_id"`
	Generation  uint64 `json:"generation"`
	Chunks      int    `json:"chunks"`
}
