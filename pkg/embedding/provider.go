package embedding

// Provider generates a vector representation of a text. taskType hints the
// backend whether the text is a document or a query; backends that do not
// distinguish ignore it.
type Provider interface {
	Generate(text string, taskType string) ([]float32, error)
}

const (
	TaskDocument = "RETRIEVAL_DOCUMENT"
	TaskQuery    = "RETRIEVAL_QUERY"
)
