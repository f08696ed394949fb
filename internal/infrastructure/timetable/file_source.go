package timetable

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"flightdeals-service/internal/domain/entity"
	"flightdeals-service/pkg/logger"
)

// FileSource reads the per-airport schedule documents produced by the airport
// timetable scrapers, one <IATA>_timetable.json file per home airport.
type FileSource struct {
	dir    string
	logger logger.Logger
}

// NewFileSource creates a new file-based timetable source
func NewFileSource(dir string, logger logger.Logger) *FileSource {
	return &FileSource{
		dir:    dir,
		logger: logger,
	}
}

// ReadDocument loads and decodes one airport's schedule document.
func (s *FileSource) ReadDocument(iata string) (entity.RawTimetableDocument, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("%s_timetable.json", strings.ToUpper(iata)))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read timetable %s: %w", path, err)
	}

	var document entity.RawTimetableDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("decode timetable %s: %w", path, err)
	}

	s.logger.Debug("Loaded timetable document", "iata", iata, "path", path)
	return document, nil
}

// ReadDocumentAt loads a schedule document from an explicit file name inside
// the source directory, for airports whose master data overrides the default.
func (s *FileSource) ReadDocumentAt(filename string) (entity.RawTimetableDocument, error) {
	path := filepath.Join(s.dir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read timetable %s: %w", path, err)
	}

	var document entity.RawTimetableDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("decode timetable %s: %w", path, err)
	}
	return document, nil
}

// ReadDocuments loads the schedule documents for all given airports.
func (s *FileSource) ReadDocuments(iatas []string) (map[string]entity.RawTimetableDocument, error) {
	documents := make(map[string]entity.RawTimetableDocument, len(iatas))
	for _, iata := range iatas {
		document, err := s.ReadDocument(iata)
		if err != nil {
			return nil, err
		}
		documents[iata] = document
	}
	return documents, nil
}
