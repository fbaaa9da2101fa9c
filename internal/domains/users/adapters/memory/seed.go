package memory

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Apurer/go-gin-users-api/internal/domains/users/domain"
)

type seedRecord struct {
	ID        string `yaml:"id"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Email     string `yaml:"email"`
}

// LoadSeed reads the startup user list from a YAML or JSON file.
// Records without an id are given a generated one.
func LoadSeed(path string) ([]domain.User, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(raw)
}

// ParseSeed decodes a YAML (or JSON) sequence of users.
func ParseSeed(raw []byte) ([]domain.User, error) {
	var records []seedRecord
	if err := yaml.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	users := make([]domain.User, 0, len(records))
	for _, rec := range records {
		id := strings.TrimSpace(rec.ID)
		if id == "" {
			id = uuid.NewString()
		}
		users = append(users, domain.User{
			ID:        id,
			FirstName: rec.FirstName,
			LastName:  rec.LastName,
			Email:     rec.Email,
		})
	}
	return users, nil
}
