package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const incidentSeed = `incident_id,timestamp,severity,category,status,description
1,2025-07-01 08:00:00,High,Malware,Open,infected laptop
2,2025-07-02 09:30:00,Low,Phishing,Closed,reported email
3,2025-07-03 11:15:00,Critical,Data Breach,In Progress,exfil suspected
`

func TestLoadOrSeed_FreshTable(t *testing.T) {
	db := newTestDB(t)
	path := writeSeedFile(t, incidentSeed)

	rows, err := db.LoadOrSeed(Incidents, path)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Column affinity turns CSV text into proper numbers.
	assert.Equal(t, int64(1), rows[0]["incident_id"])
	assert.Equal(t, "High", rows[0]["severity"])

	n, err := db.CountRows(Incidents)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestLoadOrSeed_DoesNotReapply(t *testing.T) {
	db := newTestDB(t)
	path := writeSeedFile(t, incidentSeed)

	_, err := db.LoadOrSeed(Incidents, path)
	require.NoError(t, err)

	inc := Incident{ID: 50, Timestamp: "t", Severity: "Low", Category: "Other", Status: "Open"}
	require.NoError(t, db.InsertRow(Incidents, inc.Values()...))

	// The table has rows now, so the CSV must not be consulted again.
	rows, err := db.LoadOrSeed(Incidents, path)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestLoadOrSeed_SeededTableIgnoresMissingFile(t *testing.T) {
	db := newTestDB(t)
	path := writeSeedFile(t, incidentSeed)

	_, err := db.LoadOrSeed(Incidents, path)
	require.NoError(t, err)

	rows, err := db.LoadOrSeed(Incidents, filepath.Join(t.TempDir(), "gone.csv"))
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestLoadOrSeed_EmptyCellBecomesNull(t *testing.T) {
	db := newTestDB(t)
	seed := `ticket_id,priority,description,status,assigned_to,created_at,resolution_time_hours
1,High,broken vpn,Resolved,liam,2025-07-01 08:10:00,5.5
2,Low,slow laptop,Open,mei,2025-07-02 10:45:00,
`
	path := writeSeedFile(t, seed)

	rows, err := db.LoadOrSeed(Tickets, path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 5.5, rows[0]["resolution_time_hours"])
	assert.Nil(t, rows[1]["resolution_time_hours"])
}

func TestLoadOrSeed_HeaderMismatch(t *testing.T) {
	db := newTestDB(t)
	path := writeSeedFile(t, "incident_id,when,severity,category,status,description\n")

	_, err := db.LoadOrSeed(Incidents, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want \"timestamp\"")
}

func TestLoadOrSeed_MissingFileOnEmptyTable(t *testing.T) {
	db := newTestDB(t)

	_, err := db.LoadOrSeed(Incidents, filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}
