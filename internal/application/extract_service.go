package application

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ecfix/ecfix/internal/domain"
	"github.com/ecfix/ecfix/internal/domain/logparse"
)

// ExtractService runs every extractor over one log file in a single pass.
// Only an unreadable or empty input file is an error; everything else
// degrades to absent results plus warnings on the Extraction.
type ExtractService struct{}

func NewExtractService() *ExtractService { return &ExtractService{} }

// ExtractFile reads and extracts a log file.
func (s *ExtractService) ExtractFile(path string) (*domain.Extraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading log file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("log file %s is empty", path)
	}
	return s.Extract(string(data)), nil
}

// Extract runs the section scanner and all extractors over log text.
func (s *ExtractService) Extract(text string) *domain.Extraction {
	ex := &domain.Extraction{}
	sections := logparse.ScanSections(text)

	if sec, ok := sections.Validate(); ok {
		ex.ViolationsFound = true
		var warns []string
		ex.Violations, warns = logparse.ExtractViolations(sec)
		ex.Warnings = append(ex.Warnings, warns...)

		ex.ImageRefs, warns = logparse.ExtractImageRefs(sec)
		ex.Warnings = append(ex.Warnings, warns...)
	}

	if sec, ok := sections.ShowConfig(); ok {
		var warns []string
		ex.Policy, warns = logparse.ExtractPolicy(sec)
		ex.Warnings = append(ex.Warnings, warns...)
	}

	// The components block floats outside any recognized section, so it is
	// searched for across the whole file.
	var warns []string
	ex.Components, ex.ComponentsFound, warns = logparse.ExtractComponents(text)
	ex.Warnings = append(ex.Warnings, warns...)

	return ex
}
