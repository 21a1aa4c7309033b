package domain

// Modality is the source-file category that determines which indexer
// handles a file.
type Modality string

// Supported modalities.
const (
	ModalityText  Modality = "text"
	ModalityPDF   Modality = "pdf"
	ModalityImage Modality = "image"
	ModalityVideo Modality = "video"
)

// extensionRouting maps lowercase file extensions to modalities.
// Unlisted extensions are skipped with a recorded failure, not an error.
var extensionRouting = map[string]Modality{
	".txt":  ModalityText,
	".json": ModalityText,
	".pdf":  ModalityPDF,
	".mp4":  ModalityVideo,
	".avi":  ModalityVideo,
	".mov":  ModalityVideo,
	".mkv":  ModalityVideo,
	".m4v":  ModalityVideo,
	".flv":  ModalityVideo,
	".wmv":  ModalityVideo,
	".jpg":  ModalityImage,
	".jpeg": ModalityImage,
	".png":  ModalityImage,
	".bmp":  ModalityImage,
	".gif":  ModalityImage,
	".tiff": ModalityImage,
	".tif":  ModalityImage,
	".webp": ModalityImage,
}

// ModalityForExtension returns the modality that handles the given
// lowercase file extension (including the leading dot).
func ModalityForExtension(ext string) (Modality, bool) {
	m, ok := extensionRouting[ext]
	return m, ok
}

// IndexedDocument is one searchable chunk: the unit that receives one
// embedding and is independently retrievable.
type IndexedDocument struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Content is the normalised text that was embedded.
	Content string

	// Embedding is the vector representation of Content.
	// Stored L2-normalised so dot product equals cosine similarity.
	Embedding []float32

	// Metadata carries at least source, type, chunk_index and
	// total_chunks, plus modality-specific fields.
	Metadata map[string]any
}

// SearchResult is a single similarity hit from an indexer.
type SearchResult struct {
	// Content is the matched chunk text.
	Content string

	// Similarity is the cosine score; higher means more relevant.
	Similarity float64

	// Metadata is the stored metadata of the matched chunk.
	Metadata map[string]any
}

// RankedResult is a SearchResult annotated by the retrieval aggregator.
type RankedResult struct {
	SearchResult

	// Modality identifies the indexer that produced the hit.
	Modality Modality

	// TopicDriven marks hits found via a secondary topic query rather
	// than the user's raw query.
	TopicDriven bool
}

// IndexStats is a read-only aggregate over an indexer's store.
type IndexStats struct {
	// Modality identifies the indexer.
	Modality Modality

	// Documents is the number of indexed chunks.
	Documents int

	// Files is the number of distinct source files.
	Files int

	// Details holds modality-specific aggregates (page counts,
	// total duration, format distribution, ...).
	Details map[string]any
}

// FileOutcome labels the result of indexing one file.
type FileOutcome string

// File outcomes recorded by the ingestion router.
const (
	OutcomeIndexed FileOutcome = "indexed"
	OutcomeFailed  FileOutcome = "failed"
	OutcomeSkipped FileOutcome = "skipped"
)

// FileStatus is the per-file record produced by batch ingestion.
// Failure of one file never aborts the rest of the batch.
type FileStatus struct {
	// Path is the source file path.
	Path string

	// Modality is the indexer the file was routed to, empty when skipped.
	Modality Modality

	// Outcome labels the result.
	Outcome FileOutcome

	// Reason explains failures and skips for display.
	Reason string
}
