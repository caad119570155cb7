package compliance

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/adcomply/adcomply-backend/internal/types"
)

// ContentType identifies what kind of content is being analyzed.
type ContentType string

const (
	ContentTypeText  ContentType = "text"
	ContentTypeImage ContentType = "image"
)

func NormalizeContentType(raw string) (ContentType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(ContentTypeText), "":
		return ContentTypeText, nil
	case string(ContentTypeImage):
		return ContentTypeImage, nil
	default:
		return "", fmt.Errorf("%w: unknown content_type %q", ErrInvalidInput, raw)
	}
}

// AnalysisRequest is the composed input for one engine call. The full
// guideline corpus is embedded in every request: every rule is always
// considered, at the cost of request size.
type AnalysisRequest struct {
	Content     string             `json:"content"`
	ContentType ContentType        `json:"content_type"`
	Platform    string             `json:"platform"`
	Guidelines  []*types.Guideline `json:"guidelines"`
}

// BuildRequest composes a single analysis request. Same inputs always produce
// the same serialized request; the guideline slice is embedded in store order.
func BuildRequest(content string, contentType ContentType, platform string, guidelines []*types.Guideline) (*AnalysisRequest, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is empty", ErrInvalidInput)
	}
	if _, err := NormalizeContentType(string(contentType)); err != nil {
		return nil, err
	}
	if len(guidelines) == 0 {
		return nil, fmt.Errorf("%w: no guidelines to check against", ErrEmptyCorpus)
	}
	return &AnalysisRequest{
		Content:     content,
		ContentType: contentType,
		Platform:    strings.TrimSpace(platform),
		Guidelines:  guidelines,
	}, nil
}

// Serialize produces the canonical JSON form of the request. Struct field
// order is fixed, so equal inputs serialize identically.
func (r *AnalysisRequest) Serialize() ([]byte, error) {
	return json.Marshal(r)
}
