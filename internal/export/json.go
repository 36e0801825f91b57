package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// WriteJSON writes the full ranking outcome, including failures, as
// indented JSON.
func WriteJSON(w io.Writer, outcome *types.RankingOutcome) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(outcome); err != nil {
		return fmt.Errorf("failed to encode outcome as JSON: %w", err)
	}
	return nil
}
