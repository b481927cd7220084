package network

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/travigo/subway/pkg/ctdf"
	"gopkg.in/yaml.v3"
)

type SeedDocument struct {
	Stations []SeedStation `yaml:"stations"`
	Lines    []SeedLine    `yaml:"lines"`
}

type SeedStation struct {
	Identifier string `yaml:"id"`
	Name       string `yaml:"name"`
}

type SeedLine struct {
	Identifier  string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Colour      string        `yaml:"colour"`
	ExtraCharge int           `yaml:"extraCharge"`
	Sections    []SeedSection `yaml:"sections"`
}

type SeedSection struct {
	Up       string `yaml:"up"`
	Down     string `yaml:"down"`
	Distance int    `yaml:"distance"`
	Duration int    `yaml:"duration"`
}

// LoadSeedDirectory reads every yaml file below directory. A file may hold
// several documents.
func LoadSeedDirectory(directory string) ([]SeedDocument, error) {
	var documents []SeedDocument

	err := filepath.Walk(directory,
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			extension := filepath.Ext(path)
			if fileInfo.IsDir() || (extension != ".yaml" && extension != ".yml") {
				return nil
			}

			log.Debug().Str("path", path).Msg("Loading network seed file")

			seedYaml, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			decoder := yaml.NewDecoder(bytes.NewReader(seedYaml))
			for {
				var document SeedDocument
				err := decoder.Decode(&document)
				if errors.Is(err, io.EOF) {
					break
				} else if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				documents = append(documents, document)
			}

			return nil
		})
	if err != nil {
		return nil, err
	}

	return documents, nil
}

// Import writes seed stations and lines into the store. Only a line's first
// section is taken as given, every following one goes through AddSection.
func Import(ctx context.Context, store Store, documents []SeedDocument) error {
	for _, document := range documents {
		for _, seedStation := range document.Stations {
			station := &ctdf.Station{
				PrimaryIdentifier: seedStation.Identifier,
				PrimaryName:       seedStation.Name,
			}
			if err := store.SaveStation(ctx, station); err != nil {
				return err
			}
		}
	}

	for _, document := range documents {
		for _, seedLine := range document.Lines {
			if err := importLine(ctx, store, seedLine); err != nil {
				return fmt.Errorf("line %s: %w", seedLine.Identifier, err)
			}

			log.Info().Str("line", seedLine.Identifier).Int("sections", len(seedLine.Sections)).Msg("Imported line")
		}
	}

	return nil
}

func importLine(ctx context.Context, store Store, seedLine SeedLine) error {
	if len(seedLine.Sections) == 0 {
		return fmt.Errorf("%w: no sections", ctdf.ErrInvalidSection)
	}

	first := seedLine.Sections[0]
	if err := EnsureStations(ctx, store, first.Up, first.Down); err != nil {
		return err
	}

	line, err := ctdf.NewLine(
		seedLine.Identifier, seedLine.Name, seedLine.Colour, seedLine.ExtraCharge,
		first.Up, first.Down, first.Distance, first.Duration,
	)
	if err != nil {
		return err
	}

	for _, section := range seedLine.Sections[1:] {
		if err := EnsureStations(ctx, store, section.Up, section.Down); err != nil {
			return err
		}

		if err := line.AddSection(section.Up, section.Down, section.Distance, section.Duration); err != nil {
			return err
		}
	}

	return store.InsertLine(ctx, line)
}
