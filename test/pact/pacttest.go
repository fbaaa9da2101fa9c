//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "users-api"
	ConsumerName = "users-portal"

	StateUsersBaseline = "users baseline"
	StateUserExists    = "user pact-user-1 exists"
	StateUserMissing   = "no user with id ghost-user"
)

const (
	ExistingUserID = "pact-user-1"
	MissingUserID  = "ghost-user"

	ExampleFirstName = "Pact"
	ExampleLastName  = "User"
	ExampleEmail     = "pact.user@example.com"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the pact file written by the users portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleUserPayload is the create body used by the consumer.
func ExampleUserPayload() map[string]any {
	return map[string]any{
		"first_name": ExampleFirstName,
		"last_name":  ExampleLastName,
		"email":      ExampleEmail,
	}
}

func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
