package deps

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveJava returns the java executable to run. An explicit path is used
// as is. The bare name "java" is looked up on PATH first and then under
// $JAVA_HOME/bin, which is where JDK installs without a PATH entry keep it.
func ResolveJava(configured string) string {
	configured = strings.TrimSpace(configured)
	if configured == "" {
		configured = "java"
	}
	if configured != "java" {
		return configured
	}
	if resolved, err := exec.LookPath(configured); err == nil {
		return resolved
	}
	if home := strings.TrimSpace(os.Getenv("JAVA_HOME")); home != "" {
		candidate := filepath.Join(home, "bin", executableName("java"))
		if info, err := os.Stat(candidate); err == nil && isExecutable(info) {
			return candidate
		}
	}
	return configured
}

// CheckJava reports whether the converter's Java runtime can be started.
func CheckJava(configured string) Status {
	return CheckBinaries([]Requirement{{
		Name:        "Java",
		Command:     ResolveJava(configured),
		Description: "Runs the Stanford dependency converter",
	}})[0]
}

func executableName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}

func isExecutable(info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
