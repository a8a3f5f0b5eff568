package main

import (
	"fmt"
	"io"

	"github.com/justyntemme/fuzzgo/pkg/framework/param"
	"github.com/justyntemme/fuzzgo/pkg/fuzz"
)

// runParams lists the parameter descriptors. When cfg.loadState is set the
// current column shows the stored values instead of the defaults.
func runParams(cfg *config, w io.Writer) error {
	proc := fuzz.New()
	if cfg.loadState != "" {
		if err := loadState(proc, cfg.loadState); err != nil {
			return err
		}
	}

	info := proc.Info()
	fmt.Fprintf(w, "%s %s (%s) by %s\n", info.Name, info.Version, info.Category, info.Vendor)
	fmt.Fprintf(w, "uid %X\n\n", info.UID())

	writeParams(w, proc.Handle())
	fmt.Fprintf(w, "\nclipping: %s\n", describeClipping(proc.SymmetricClipping()))
	return nil
}

func writeParams(w io.Writer, h *param.Handle) {
	fmt.Fprintf(w, "%-3s %-6s %-12s %-12s %-12s %-12s %s\n",
		"id", "key", "min", "max", "default", "current", "smoothing")
	for _, p := range h.Registry().All() {
		current, _ := h.Normalized(p.ID)
		fmt.Fprintf(w, "%-3d %-6s %-12s %-12s %-12s %-12s %s\n",
			p.ID, p.Key,
			p.FormatValue(0), p.FormatValue(1),
			p.FormatValue(p.DefaultNormalized()),
			p.FormatValue(current),
			describeSmoothing(p.Smoothing))
	}
}

func describeSmoothing(s param.Smoothing) string {
	if s.Type == param.NoSmoothing {
		return "none"
	}
	return fmt.Sprintf("%s %gms", s.Type, s.TimeMs)
}

func describeClipping(symmetric bool) string {
	if symmetric {
		return "symmetric"
	}
	return "positive only"
}
