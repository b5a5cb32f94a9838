package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drying-engine/internal/models"
)

const scenarioYAML = `
areas:
  - {name: Living Room, length: 4.5, width: 3.5, height: 2.7, wet_percentage: 85}
  - {name: Kitchen, length: 5.0, width: 3.6, height: 2.7, wet_percentage: 90}
  - {name: Hallway, length: 4.0, width: 3.0, height: 2.7, wet_percentage: 40}
water_class: 2
ambient:
  temperature_celsius: 25
  relative_humidity_percent: 60
  system_type: closed
selections:
  - {equipment_id: LGR-A, quantity: 1, daily_rate: 45}
  - {equipment_id: LGR-B, quantity: 2, daily_rate: 45}
  - {equipment_id: AirMover-1500, quantity: 8, daily_rate: 25}
  - {equipment_id: AirMover-2500, quantity: 5, daily_rate: 25}
duration_days: 4
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAssess_Text(t *testing.T) {
	out, err := run(t, "assess", "-f", writeFile(t, "job.yaml", scenarioYAML))
	require.NoError(t, err)

	assert.Contains(t, out, "Drying index")
	assert.Contains(t, out, "33.6 (FAIR)")
	assert.Contains(t, out, "1235 L/day")
	assert.Contains(t, out, "16 of 3 required")
	assert.Contains(t, out, "1840.00 over 4 day(s)")
	assert.Contains(t, out, "ADVISORY")
	assert.Contains(t, out, "AirMover-2500")
}

func TestAssess_JSON(t *testing.T) {
	out, err := run(t, "assess", "-f", writeFile(t, "job.yaml", scenarioYAML), "-o", "json")
	require.NoError(t, err)

	var result models.DryingAssessmentResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.InDelta(t, 123.525, result.TotalVolumeCubicMetres, 1e-9)
	assert.Equal(t, 1235, result.WaterRemovalTargetLitresPerDay)
	require.NotNil(t, result.Psychrometrics)
	assert.Equal(t, models.SystemClosed, result.Psychrometrics.SystemType)
	assert.Equal(t, "460.00", result.TotalDailyCost.StringFixed(2))
	assert.Equal(t, 4, result.CircuitsRequired)
}

func TestAssess_SampleInput(t *testing.T) {
	out, err := run(t, "assess", "-f", filepath.Join("..", "..", "samples", "assessment.yaml"), "-o", "json")
	require.NoError(t, err)

	var result models.DryingAssessmentResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.InDelta(t, 123.525, result.TotalVolumeCubicMetres, 1e-9)
	assert.Equal(t, 1235, result.WaterRemovalTargetLitresPerDay)
	assert.Equal(t, 3, result.MinAirMoversRequired)
	assert.Equal(t, "1840.00", result.TotalCost.StringFixed(2))
	assert.Equal(t, models.SeverityAdvisory, result.Severity)
}

func TestAssess_Errors(t *testing.T) {
	_, err := run(t, "assess")
	assert.ErrorContains(t, err, "input file is required")

	_, err = run(t, "assess", "-f", writeFile(t, "job.yaml", scenarioYAML), "-o", "xml")
	assert.ErrorContains(t, err, "output format")

	_, err = run(t, "assess", "-f", writeFile(t, "job.yaml", scenarioYAML+"colour: blue\n"))
	assert.ErrorContains(t, err, "parsing input")

	_, err = run(t, "assess", "-f", writeFile(t, "job.yaml", "areas: []\nwater_class: 2\nambient: {temperature_celsius: 20, relative_humidity_percent: 40, system_type: OPEN}\nduration_days: 1\n"))
	assert.True(t, models.IsEngineError(err))
	assert.Equal(t, "empty_scope", models.ErrorKind(err))
}

func TestAssess_CustomCatalog(t *testing.T) {
	catalogPath := writeFile(t, "equipment.yaml", `
equipment:
  - {id: LGR-A, kind: dehumidifier-lgr, rated_capacity_litres_per_day: 55, amp_draw: 2.85}
`)
	_, err := run(t, "assess", "-f", writeFile(t, "job.yaml", scenarioYAML), "--catalog", catalogPath)
	assert.Equal(t, "unknown_equipment", models.ErrorKind(err))
}

func TestPsychro(t *testing.T) {
	out, err := run(t, "psychro", "--temp", "25", "--rh", "60", "--system", "closed")
	require.NoError(t, err)
	assert.Equal(t, "Drying index: 33.6 (FAIR)\n", out)

	_, err = run(t, "psychro", "--temp", "25", "--rh", "60", "--system", "vented")
	assert.Equal(t, "invalid_system_type", models.ErrorKind(err))

	_, err = run(t, "psychro", "--temp", "25")
	assert.Error(t, err, "rh is required")
}

func TestCatalog(t *testing.T) {
	out, err := run(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "DESICCANT-300")
	assert.Contains(t, out, "AIR_MOVER_AXIAL")

	out, err = run(t, "catalog", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "equipment:")
}
