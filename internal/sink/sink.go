package sink

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"scrapers/tools/internal/domain"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

var ErrSerialization = errors.New("serialization failed")

// ResultSink writes product records as indented JSON to a fixed file path
// and to a console writer.
type ResultSink struct {
	fs      afero.Fs
	path    string
	console io.Writer
}

func NewResultSink(fs afero.Fs, path string, console io.Writer) *ResultSink {
	return &ResultSink{
		fs:      fs,
		path:    path,
		console: console,
	}
}

// WriteFile replaces the sink file with product's JSON encoding.
func (s *ResultSink) WriteFile(product *domain.Product) error {
	data, err := encode(product)
	if err != nil {
		return err
	}

	if err := afero.WriteFile(s.fs, s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}

	log.Infof("💾 Saved product to %s", s.path)
	return nil
}

func (s *ResultSink) WriteConsole(product *domain.Product) error {
	data, err := encode(product)
	if err != nil {
		return err
	}

	if _, err := s.console.Write(data); err != nil {
		return fmt.Errorf("failed to write to console: %w", err)
	}
	return nil
}

func encode(product *domain.Product) ([]byte, error) {
	if product == nil {
		return nil, fmt.Errorf("%w: nil product", ErrSerialization)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(product); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return buf.Bytes(), nil
}
