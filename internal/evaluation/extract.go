package evaluation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/style-transfer/internal/schemas"
	"github.com/jonathan/style-transfer/internal/types"
)

// textContents extracts the generated text from a response and the original
// text from the request's first target document. A response whose
// processed_content does not parse back through its output schema fails
// extraction, which callers convert into a score-0 record.
func textContents(request *types.StyleTransferRequest, response *types.StyleTransferResponse) (generated, original string, err error) {
	if response.OutputSchema == nil {
		return "", "", fmt.Errorf("response carries no output schema")
	}

	generated, err = schemas.ExtractText(response.OutputSchema.OutputType, response.ProcessedContent)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract generated text: %w", err)
	}

	if len(request.TargetContent) == 0 {
		return "", "", fmt.Errorf("request has no target content")
	}

	target := request.TargetContent[0]
	if target.Content != "" {
		return generated, target.Content, nil
	}

	// No raw content: build a proxy string from title and metadata.
	title := target.Title
	if title == "" {
		title = "Untitled"
	}
	proxy := "Title: " + title
	if len(target.Metadata) > 0 {
		keys := make([]string, 0, len(target.Metadata))
		for key := range target.Metadata {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		pairs := make([]string, 0, len(keys))
		for _, key := range keys {
			pairs = append(pairs, fmt.Sprintf("%s: %v", key, target.Metadata[key]))
		}
		proxy += "\nMetadata: " + strings.Join(pairs, ", ")
	}
	return generated, proxy, nil
}
