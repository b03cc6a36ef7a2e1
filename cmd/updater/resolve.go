package main

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// resolve prints the resolved hierarchy so ids can be pinned in config.
func resolve(parent context.Context, configPath string, out io.Writer) error {
	a, err := bootstrap(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signalContext(parent)
	defer stop()

	h, err := a.resolveHierarchy(ctx)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(h)
}
