package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	p, ok := c.PathByID("four_year_college")
	require.True(t, ok)
	assert.Equal(t, 40000.0, p.UpfrontCost)
	assert.Equal(t, 48, p.DurationMonths)
	assert.True(t, p.Student)
	assert.Equal(t, 1500.0, p.MonthlyCosts.Total())

	mil, ok := c.PathByID("military")
	require.True(t, ok)
	assert.Equal(t, 0.0, mil.UpfrontCost)
	assert.Equal(t, 2200.0, mil.MonthlySalary)
	assert.False(t, mil.Student)
}

func TestSideJob_IncomePerMonth(t *testing.T) {
	j := SideJob{HourlyRate: 14, HoursPerWeek: 20}
	assert.Equal(t, 1120.0, j.IncomePerMonth())
}

func TestLoad_PartialFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	body := `
vehicles:
  - id: scooter
    name: Electric Scooter
    description: Cheap wheels.
    price: 900
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	// Overridden section
	require.Len(t, c.Vehicles, 1)
	v, ok := c.VehicleByID("scooter")
	require.True(t, ok)
	assert.Equal(t, 900.0, v.Price)

	// Untouched sections fall back
	assert.Len(t, c.Paths, len(Default().Paths))
	assert.Len(t, c.Goals, len(Default().Goals))
}

func TestLoad_RejectsDuplicateIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	body := `
vehicles:
  - id: twin
    name: One
    price: 100
  - id: twin
    name: Two
    price: 200
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate vehicle id")
}

func TestValidate_RequiresPaths(t *testing.T) {
	c := &Catalog{}
	assert.Error(t, c.Validate())
}
