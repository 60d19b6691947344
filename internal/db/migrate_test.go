package db

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	names, err := fs.Glob(migrationFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, name := range names {
		base := strings.TrimPrefix(name, "migrations/")
		switch {
		case strings.HasSuffix(base, ".up.sql"):
			ups[strings.TrimSuffix(base, ".up.sql")] = true
		case strings.HasSuffix(base, ".down.sql"):
			downs[strings.TrimSuffix(base, ".down.sql")] = true
		default:
			t.Fatalf("unexpected migration file %s", base)
		}
	}
	assert.Equal(t, ups, downs, "every up migration needs a down migration")
	assert.True(t, ups["000001_initial"])
	assert.True(t, ups["000002_canonical_planning_role"])
}

func TestInitialMigrationDeclaresPeriodUniqueness(t *testing.T) {
	body, err := migrationFS.ReadFile("migrations/000001_initial.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "UNIQUE KEY unique_department_month (department_id, month, year)")
}
