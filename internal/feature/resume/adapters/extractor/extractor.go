// Package extractor turns PDF bytes into cleaned plain text.
package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"unicode/utf8"

	"code.sajari.com/docconv"

	"resume_backend/internal/feature/resume/usecase"
)

// ocrThreshold is the cleaned text length below which the OCR fallback runs.
const ocrThreshold = usecase.MinTextLength

// OCR recognizes text in scanned PDFs.
type OCR interface {
	DetectPDFText(ctx context.Context, pdf []byte) (string, error)
}

// convertFunc extracts the raw text layer of a PDF.
type convertFunc func(r io.Reader) (string, error)

// Extractor reads the PDF text layer with docconv and falls back to OCR when the layer is
// missing or too short.
type Extractor struct {
	convert convertFunc
	ocr     OCR
}

var _ usecase.TextExtractor = (*Extractor)(nil)

// NewExtractor creates an Extractor. ocr may be nil.
func NewExtractor(ocr OCR) *Extractor {
	return &Extractor{convert: convertPDF, ocr: ocr}
}

// pdfTools are the poppler-utils programs docconv runs to read the text layer.
var pdfTools = []string{"pdftotext", "pdfinfo"}

// convertPDF reads the text layer with docconv. A missing poppler binary is reported as
// usecase.ErrExtractorUnavailable rather than as a bad document.
func convertPDF(r io.Reader) (string, error) {
	body, _, err := docconv.ConvertPDF(r)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %v", usecase.ErrExtractorUnavailable, err)
		}
		return "", err
	}
	return body, nil
}

// CheckPDFTools reports whether the poppler-utils programs are on PATH.
func CheckPDFTools() error {
	for _, name := range pdfTools {
		if _, err := exec.LookPath(name); err != nil {
			return fmt.Errorf("%w: %v", usecase.ErrExtractorUnavailable, err)
		}
	}
	return nil
}

// PDFTools is a readiness check for the poppler-utils programs.
type PDFTools struct{}

// PingContext implements the readiness Pinger.
func (PDFTools) PingContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return CheckPDFTools()
}

// Extract returns the cleaned text of pdf.
func (e *Extractor) Extract(ctx context.Context, pdf []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	raw, convErr := e.convert(bytes.NewReader(pdf))
	text := ""
	if convErr == nil {
		text = Clean(raw)
	}
	if utf8.RuneCountInString(text) >= ocrThreshold || e.ocr == nil {
		if convErr != nil {
			return "", fmt.Errorf("failed to extract pdf text: %w", convErr)
		}
		return text, nil
	}

	slog.Info("pdf text layer too short, running ocr", "chars", utf8.RuneCountInString(text), "convert_error", convErr)
	scanned, err := e.ocr.DetectPDFText(ctx, pdf)
	if err != nil {
		if errors.Is(convErr, usecase.ErrExtractorUnavailable) {
			return "", fmt.Errorf("%w; ocr fallback: %v", convErr, err)
		}
		if convErr != nil {
			return "", fmt.Errorf("failed to extract pdf text: %w", err)
		}
		slog.Warn("ocr fallback failed", "error", err)
		return text, nil
	}
	return Clean(scanned), nil
}

// OCREnabled reports whether VISION_OCR_ENABLED is set to a true value.
func OCREnabled() bool {
	enabled, _ := strconv.ParseBool(os.Getenv("VISION_OCR_ENABLED"))
	return enabled
}
