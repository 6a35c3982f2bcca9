package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/retlint/retlint/internal/ir"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "retlint.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.CreateSchema())
	return db
}

func testRun(id string, started time.Time) ir.Run {
	return ir.Run{
		ID:        id,
		StartedAt: started,
		Source:    "./src",
		IRVersion: ir.Version,
		Findings: []ir.Finding{{
			ID:       id + "-f1",
			File:     "src/app.ts",
			RuleID:   ir.RuleExplicitReturnType,
			Severity: "MEDIUM",
			Line:     3,
		}},
	}
}

func TestLoadLatestRun_EmptyDB(t *testing.T) {
	db := openTestDB(t)

	_, err := db.LoadLatestRun()
	require.Error(t, err)
}

func TestLoadLatestRun_PicksNewestStart(t *testing.T) {
	db := openTestDB(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	older := testRun("run-old", base)
	newer := testRun("run-new", base.Add(time.Hour))
	require.NoError(t, db.SaveRun(&older))
	require.NoError(t, db.SaveRun(&newer))

	got, err := db.LoadLatestRun()
	require.NoError(t, err)
	require.Equal(t, "run-new", got.ID)
	require.Len(t, got.Findings, 1)
	require.Equal(t, "run-new-f1", got.Findings[0].ID)
}

func TestSaveRun_UpsertRewritesFindings(t *testing.T) {
	db := openTestDB(t)

	run := testRun("run-a", time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, db.SaveRun(&run))

	run.Findings = nil
	require.NoError(t, db.SaveRun(&run))

	got, err := db.LoadRun("run-a")
	require.NoError(t, err)
	require.Empty(t, got.Findings)

	rows, err := db.ListFindings("run-a", "LOW")
	require.NoError(t, err)
	require.Empty(t, rows)
}
