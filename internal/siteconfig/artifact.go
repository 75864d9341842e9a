package siteconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ArtifactPath is the location of the configuration artifact inside a site.
const ArtifactPath = "src/config/siteConfig.ts"

// Decode converts a validated document into the typed schema.
func Decode(doc any) (*SiteConfig, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	var cfg SiteConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding site config: %w", err)
	}
	cfg.fillSlices()
	return &cfg, nil
}

// RenderArtifact produces the TypeScript source stored at ArtifactPath: a
// type import followed by one exported SiteConfig value.
func RenderArtifact(cfg *SiteConfig) ([]byte, error) {
	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding site config: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("import type { SiteConfig } from './siteConfig';\n\n")
	b.WriteString("const siteConfig: SiteConfig = ")
	b.Write(bytes.TrimRight(body.Bytes(), "\n"))
	b.WriteString(";\n\nexport default siteConfig;\n")
	return b.Bytes(), nil
}
