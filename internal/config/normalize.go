package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeConverter(); err != nil {
		return err
	}
	c.normalizeFilters()
	c.normalizeNXT()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeConverter() error {
	if value, ok := os.LookupEnv("SWBD_CONVERTER_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Converter.Dir = strings.TrimSpace(value)
	}
	c.Converter.Dir = strings.TrimSpace(c.Converter.Dir)
	if c.Converter.Dir == "" {
		c.Converter.Dir = defaultConverterDir
	}
	var err error
	if c.Converter.Dir, err = expandPath(c.Converter.Dir); err != nil {
		return fmt.Errorf("converter.dir: %w", err)
	}
	c.Converter.JavaBinary = strings.TrimSpace(c.Converter.JavaBinary)
	if c.Converter.JavaBinary == "" {
		c.Converter.JavaBinary = defaultJavaBinary
	}
	c.Converter.ClassPath = strings.TrimSpace(c.Converter.ClassPath)
	if c.Converter.ClassPath == "" {
		c.Converter.ClassPath = defaultClassPath
	}
	c.Converter.MainClass = strings.TrimSpace(c.Converter.MainClass)
	if c.Converter.MainClass == "" {
		c.Converter.MainClass = defaultMainClass
	}
	c.Converter.Memory = strings.TrimSpace(c.Converter.Memory)
	if c.Converter.TimeoutSeconds <= 0 {
		c.Converter.TimeoutSeconds = defaultConverterTime
	}
	args := make([]string, 0, len(c.Converter.ExtraArgs))
	for _, arg := range c.Converter.ExtraArgs {
		if arg = strings.TrimSpace(arg); arg != "" {
			args = append(args, arg)
		}
	}
	c.Converter.ExtraArgs = args
	return nil
}

func (c *Config) normalizeFilters() {
	if len(c.Filters.PunctTags) == 0 {
		c.Filters.PunctTags = defaultPunctTags()
	}
	c.Filters.FillerWords = lowerUnique(c.Filters.FillerWords)
	c.Filters.MWEs = lowerUnique(c.Filters.MWEs)
	if c.Filters.MinTokens <= 0 {
		c.Filters.MinTokens = defaultMinTokens
	}
}

func (c *Config) normalizeNXT() {
	c.NXT.TerminalsSubdir = strings.TrimSpace(c.NXT.TerminalsSubdir)
	if c.NXT.TerminalsSubdir == "" {
		c.NXT.TerminalsSubdir = defaultTerminalsSubdir
	}
	c.NXT.SyntaxSubdir = strings.TrimSpace(c.NXT.SyntaxSubdir)
	if c.NXT.SyntaxSubdir == "" {
		c.NXT.SyntaxSubdir = defaultSyntaxSubdir
	}
	c.NXT.TurnsSubdir = strings.TrimSpace(c.NXT.TurnsSubdir)
	c.NXT.Charset = strings.ToLower(strings.TrimSpace(c.NXT.Charset))
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func lowerUnique(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		normalized := strings.ToLower(strings.TrimSpace(value))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
