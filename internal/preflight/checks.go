package preflight

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"swbd/internal/config"
	"swbd/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckConverter verifies that the converter directory exists and that the
// class path resolves to at least one jar. Relative class path entries are
// taken from dir, and an entry ending in "*" matches every jar in its
// directory.
func CheckConverter(dir, classPath string) Result {
	const name = "Converter"

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: converter directory missing; set converter.dir or SWBD_CONVERTER_DIR)", dir)}
	}
	jars := ClassPathJars(dir, classPath)
	if len(jars) == 0 {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: no .jar on class path %q)", dir, classPath)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d jar(s))", dir, len(jars))}
}

// ClassPathJars lists the jar files a java class path names.
func ClassPathJars(dir, classPath string) []string {
	var jars []string
	for _, entry := range filepath.SplitList(classPath) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !filepath.IsAbs(entry) {
			entry = filepath.Join(dir, entry)
		}
		if strings.HasSuffix(entry, "*") {
			matches, _ := filepath.Glob(filepath.Join(filepath.Dir(entry), "*.jar"))
			jars = append(jars, matches...)
			continue
		}
		if strings.HasSuffix(entry, ".jar") {
			if _, err := os.Stat(entry); err == nil {
				jars = append(jars, entry)
			}
		}
	}
	return jars
}

// CheckSystemDeps evaluates the external binaries for the given config. The
// CLI check command and RunAll share it so the requirements live in one
// place.
func CheckSystemDeps(_ context.Context, cfg *config.Config) []deps.Status {
	return []deps.Status{deps.CheckJava(cfg.JavaBinary())}
}
