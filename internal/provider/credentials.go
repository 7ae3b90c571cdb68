package provider

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"runtime"
	"strings"
)

// CredentialError reports a missing API key with both remediation paths.
// It is fatal to the request and never retried.
type CredentialError struct {
	Provider string
	EnvVar   string
	Service  string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf(
		"no API key for %s: set %s, or store one in your OS keychain under service %q for your user",
		e.Provider, e.EnvVar, e.Service)
}

// credentialFunc resolves a credential at call time. Nil means the backend
// needs no credential (local providers skip resolution entirely).
type credentialFunc func() (string, error)

// credentialResolver returns the resolution chain for a remote provider:
// an environment variable named by convention from the provider identifier,
// then the local OS credential store under a service name derived the same
// way, then a CredentialError describing both.
func credentialResolver(name string) credentialFunc {
	envVar := strings.ToUpper(name) + "_API_KEY"
	service := "ghostline-" + name

	return func() (string, error) {
		if key := os.Getenv(envVar); key != "" {
			return key, nil
		}
		if key := keychainLookup(service); key != "" {
			return key, nil
		}
		return "", &CredentialError{Provider: name, EnvVar: envVar, Service: service}
	}
}

// keychainLookup queries the platform credential store for the current user.
// Any failure degrades to "not found"; the caller produces the actionable
// error.
func keychainLookup(service string) string {
	username := ""
	if u, err := user.Current(); err == nil {
		username = u.Username
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("security", "find-generic-password", "-s", service, "-a", username, "-w")
	default:
		cmd = exec.Command("secret-tool", "lookup", "service", service, "username", username)
	}

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return ""
	}
	return strings.TrimSpace(stdout.String())
}
