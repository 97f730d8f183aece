package extractor

import (
	"context"
	"fmt"
	"strings"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
)

// VisionOCR runs Google Cloud Vision document text detection on PDFs.
type VisionOCR struct {
	client *gvision.ImageAnnotatorClient
}

var _ OCR = (*VisionOCR)(nil)

// NewVisionOCR creates a VisionOCR using application default credentials.
func NewVisionOCR(ctx context.Context) (*VisionOCR, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionOCR{client: client}, nil
}

// Close releases the Vision API client.
func (v *VisionOCR) Close() error {
	return v.client.Close()
}

// DetectPDFText returns the text recognized on pdf. Synchronous annotation covers the
// first five pages.
func (v *VisionOCR) DetectPDFText(ctx context.Context, pdf []byte) (string, error) {
	req := &visionpb.BatchAnnotateFilesRequest{
		Requests: []*visionpb.AnnotateFileRequest{
			{
				InputConfig: &visionpb.InputConfig{Content: pdf, MimeType: "application/pdf"},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateFiles(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vision API request failed: %w", err)
	}
	if len(resp.Responses) == 0 {
		return "", nil
	}
	file := resp.Responses[0]
	if file.Error != nil {
		return "", fmt.Errorf("vision API error: %s", file.Error.Message)
	}

	var sb strings.Builder
	for _, page := range file.Responses {
		if page.Error != nil {
			return "", fmt.Errorf("vision API error: %s", page.Error.Message)
		}
		if page.FullTextAnnotation == nil {
			continue
		}
		sb.WriteString(page.FullTextAnnotation.Text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
