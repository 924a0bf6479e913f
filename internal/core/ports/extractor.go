package ports

import "github.com/ewilliams-labs/chorale/internal/core/domain"

// InstructionExtractor turns a free-text instruction into structured search
// parameters. Extraction never fails: unrecognized text is carried as
// keywords and an empty instruction yields zero-value parameters.
type InstructionExtractor interface {
	Extract(instruction string) domain.SearchParameters
}
