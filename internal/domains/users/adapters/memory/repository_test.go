package memory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-users-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-users-api/internal/domains/users/ports"
)

func seedUsers(t *testing.T, repo *Repository, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := repo.Append(context.Background(), &domain.User{ID: id, FirstName: "F-" + id, LastName: "L-" + id, Email: id + "@x.com"})
		require.NoError(t, err)
	}
}

func ids(users []*domain.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

func TestRepository_ListKeepsInsertionOrder(t *testing.T) {
	repo := NewRepository()
	seedUsers(t, repo, "c", "a", "b")

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, ids(list))
}

func TestRepository_ListOnEmptyStoreIsNotNil(t *testing.T) {
	list, err := NewRepository().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestRepository_AppendRejectsDuplicateAndEmptyID(t *testing.T) {
	repo := NewRepository()
	seedUsers(t, repo, "a")

	_, err := repo.Append(context.Background(), &domain.User{ID: "a"})
	assert.ErrorIs(t, err, ports.ErrDuplicateID)

	_, err = repo.Append(context.Background(), &domain.User{ID: ""})
	assert.ErrorIs(t, err, domain.ErrEmptyID)
}

func TestRepository_ReturnedRecordsAreCopies(t *testing.T) {
	repo := NewRepository()
	seedUsers(t, repo, "a")

	got, err := repo.FindByID(context.Background(), "a")
	require.NoError(t, err)
	got.FirstName = "mutated"

	again, err := repo.FindByID(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "F-a", again.FirstName)
}

func TestRepository_RemoveByID(t *testing.T) {
	repo := NewRepository()
	seedUsers(t, repo, "a", "b", "c")

	require.NoError(t, repo.RemoveByID(context.Background(), "b"))
	assert.ErrorIs(t, repo.RemoveByID(context.Background(), "b"), ports.ErrNotFound)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, ids(list))
}

func TestRepository_RemoveByIDReleasesTail(t *testing.T) {
	repo := NewRepository()
	seedUsers(t, repo, "a", "b", "c")

	require.NoError(t, repo.RemoveByID(context.Background(), "a"))

	tail := repo.users[len(repo.users):cap(repo.users)]
	require.NotEmpty(t, tail)
	for _, user := range tail {
		assert.Nil(t, user)
	}
}

func TestRepository_UpdateByID(t *testing.T) {
	repo := NewRepository()
	seedUsers(t, repo, "a")
	email := "new@x.com"

	updated, err := repo.UpdateByID(context.Background(), "a", domain.Patch{Email: &email}, domain.IgnoreEmpty)
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", updated.Email)
	assert.Equal(t, "F-a", updated.FirstName)
	assert.Equal(t, "L-a", updated.LastName)

	_, err = repo.UpdateByID(context.Background(), "missing", domain.Patch{Email: &email}, domain.IgnoreEmpty)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ConcurrentAppendsKeepIDsUnique(t *testing.T) {
	repo := NewRepository()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = repo.Append(context.Background(), &domain.User{ID: fmt.Sprintf("id-%d", i%10)})
		}(i)
	}
	wg.Wait()

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 10)
}

func TestSeed_FromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	content := `
- id: seed-1
  first_name: John
  last_name: Doe
  email: john@x.com
- first_name: Jane
  last_name: Roe
  email: jane@x.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	users, err := LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "seed-1", users[0].ID)
	assert.NotEmpty(t, users[1].ID)

	repo := NewRepository()
	require.NoError(t, repo.Seed(context.Background(), users))
	got, err := repo.FindByID(context.Background(), "seed-1")
	require.NoError(t, err)
	assert.Equal(t, "Doe", got.LastName)
}

func TestSeed_AcceptsJSON(t *testing.T) {
	users, err := ParseSeed([]byte(`[{"id":"j-1","first_name":"A","last_name":"B","email":"a@b.c"}]`))
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, domain.User{ID: "j-1", FirstName: "A", LastName: "B", Email: "a@b.c"}, users[0])
}

func TestSeed_DuplicateIDsFail(t *testing.T) {
	repo := NewRepository()
	err := repo.Seed(context.Background(), []domain.User{{ID: "x"}, {ID: "x"}})
	assert.ErrorIs(t, err, ports.ErrDuplicateID)
}
