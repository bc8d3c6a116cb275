// Package output provides the console's printing layer.
// Replies, macro reports and error lines all go through a Printer so that styling
// and test capture are decided in one place.
package output

// StyleProvider supplies a TextStyle per semantic type.
// The output package depends only on this interface, not on a concrete theme.
type StyleProvider interface {
	// GetStyle returns a TextStyle for the given semantic type.
	GetStyle(semantic string) TextStyle

	// IsAvailable returns true if the provider is ready to render styles.
	// The printer falls back to plain text otherwise.
	IsAvailable() bool
}

// TextStyle renders text with styling.
type TextStyle interface {
	Render(text string) string
}

// SemanticType is the meaning of a piece of output, used to pick its style.
type SemanticType string

const (
	// SemanticPlain is text without semantic meaning (usage line, prompt).
	SemanticPlain SemanticType = "plain"
	// SemanticResult is a reply printed for a query.
	SemanticResult SemanticType = "result"
	// SemanticInfo is informational text such as the banner.
	SemanticInfo SemanticType = "info"
	// SemanticSuccess reports a completed workflow.
	SemanticSuccess SemanticType = "success"
	// SemanticError is an error surfaced to the operator.
	SemanticError SemanticType = "error"
)
