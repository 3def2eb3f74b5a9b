package exam

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed/questions.yaml
var defaultSeed []byte

// DecodeSeed reads a YAML list of questions.
func DecodeSeed(r io.Reader) ([]Question, error) {
	var qs []Question
	if err := yaml.NewDecoder(r).Decode(&qs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return qs, nil
}

// LoadSeed reads the seed file at path, or the embedded default bank when path is empty.
func LoadSeed(path string) ([]Question, error) {
	if path == "" {
		return DecodeSeed(bytes.NewReader(defaultSeed))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeSeed(f)
}

// SeedIfEmpty puts qs into the store when it holds no questions yet.
// It returns how many questions were written.
func SeedIfEmpty(ctx context.Context, s Store, qs []Question) (int, error) {
	existing, err := s.ListQuestions(ctx, ListOpts{Limit: 1})
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i, q := range qs {
		if _, err := s.PutQuestion(ctx, q); err != nil {
			return i, fmt.Errorf("seed question %q: %w", q.ID, err)
		}
	}
	return len(qs), nil
}
