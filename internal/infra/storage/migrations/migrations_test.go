package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamesAreOrdered(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)

	assert.Equal(t, []string{"0001_init.sql", "0002_working_hours.sql"}, names)
}

func TestInitDeclaresOverlapConstraint(t *testing.T) {
	content, err := files.ReadFile("sql/0001_init.sql")
	require.NoError(t, err)

	sql := string(content)
	assert.True(t, strings.Contains(sql, "EXCLUDE USING gist"))
	assert.True(t, strings.Contains(sql, "UNIQUE (barber_id, absence_date)"))
}
