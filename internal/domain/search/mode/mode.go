// Package mode enumerates search ranking strategies.
package mode

// Mode is the ranking strategy.
type Mode string

const (
	// Lexical ranks by weighted field matches and click feedback.
	Lexical Mode = "lexical"
	// Semantic ranks by embedding cosine similarity.
	Semantic Mode = "semantic"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Lexical || m == Semantic
}
