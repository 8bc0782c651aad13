package tailwind

import (
	"fmt"
	"os"
	"regexp"
)

// Config is the subset of a Tailwind configuration file that matters for
// deployment sanity checks: which template paths the bundler scans and which
// plugins it loads.
type Config struct {
	Path         string
	ContentGlobs []string
	Plugins      []string
}

// The config file is JavaScript, but the two arrays we care about are flat
// literals in every config this tool targets. A full JS parser would be a
// re-implementation of the bundler's job; lexical extraction is enough to
// validate the declared paths.
var (
	contentArrayRe = regexp.MustCompile(`(?s)content\s*:\s*\[(.*?)\]`)
	pluginArrayRe  = regexp.MustCompile(`(?s)plugins\s*:\s*\[(.*?)\]`)
	stringLitRe    = regexp.MustCompile(`['"]([^'"]+)['"]`)
	requireRe      = regexp.MustCompile(`require\(\s*['"]([^'"]+)['"]\s*\)`)
)

// ParseConfig extracts the content globs and plugin names from a Tailwind
// configuration file.
func ParseConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tailwind config %s: %w", path, err)
	}

	cfg := &Config{Path: path}

	if m := contentArrayRe.FindSubmatch(raw); m != nil {
		for _, lit := range stringLitRe.FindAllSubmatch(m[1], -1) {
			cfg.ContentGlobs = append(cfg.ContentGlobs, string(lit[1]))
		}
	}
	if m := pluginArrayRe.FindSubmatch(raw); m != nil {
		for _, req := range requireRe.FindAllSubmatch(m[1], -1) {
			cfg.Plugins = append(cfg.Plugins, string(req[1]))
		}
	}

	if len(cfg.ContentGlobs) == 0 {
		return nil, fmt.Errorf("tailwind config %s declares no content paths", path)
	}

	return cfg, nil
}
