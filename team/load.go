package team

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileTeam is the on-disk form of a Descriptor
type fileTeam struct {
	Key       string `yaml:"key"`
	Name      string `yaml:"name"`
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
}

type fileRegistry struct {
	Teams []fileTeam `yaml:"teams"`
}

// Parse builds a registry from YAML:
//
//	teams:
//	  - key: KC
//	    name: Kansas City Chiefs
//	    primary: "#e31837"
//	    secondary: "#ffb81c"
func Parse(data []byte) (*Registry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var raw fileRegistry
	if err := dec.Decode(&raw); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTeam, typeErr.Errors[0])
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidTeam, err)
	}

	teams := make([]Descriptor, 0, len(raw.Teams))
	for i, ft := range raw.Teams {
		primary, err := ParseColor(ft.Primary)
		if err != nil {
			return nil, fmt.Errorf("team %d (%s) primary: %w", i, ft.Key, err)
		}
		secondary, err := ParseColor(ft.Secondary)
		if err != nil {
			return nil, fmt.Errorf("team %d (%s) secondary: %w", i, ft.Key, err)
		}
		teams = append(teams, Descriptor{
			Key:       ft.Key,
			Name:      ft.Name,
			Primary:   primary,
			Secondary: secondary,
		})
	}
	return NewRegistry(teams...)
}

// LoadFile reads a registry from a YAML file
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read teams file: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("teams file %s: %w", path, err)
	}
	return r, nil
}
