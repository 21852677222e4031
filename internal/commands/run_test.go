package commands

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope-dev/salescope/internal/config"
)

const salesData = `TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region
T1|2024-01-01|P1|Widget|2|10.00|C1|North
T2|2024-01-02|P2|Gadget|1|25.00|C2|South
T3|2024-01-03|P999|Doohickey|3|5.00|C3|North
X4|2024-01-03|P1|Widget|1|10.00|C4|North
garbage line
`

const catalogJSON = `{
	"products": [
		{"id": 1, "title": "Widget", "category": "tools", "brand": "Acme", "rating": 4.5},
		{"id": 2, "title": "Gadget", "category": "toys", "brand": "Zenith", "rating": null}
	]
}`

func setupProject(t *testing.T, catalogURL string) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Data.Input = filepath.Join(dir, "data", "sales_data.txt")
	cfg.Data.EnrichedOutput = filepath.Join(dir, "data", "enriched_sales_data.txt")
	cfg.Data.ReportOutput = filepath.Join(dir, "output", "sales_report.txt")
	cfg.Catalog.URL = catalogURL
	cfg.Catalog.TimeoutSeconds = 5

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	require.NoError(t, os.WriteFile(cfg.Data.Input, []byte(salesData), 0o644))

	cfgPath := filepath.Join(dir, "salescope.yaml")
	require.NoError(t, config.Save(cfgPath, cfg))
	return cfg, cfgPath
}

func catalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(catalogJSON))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRun_FullPipeline(t *testing.T) {
	srv := catalogServer(t)
	cfg, cfgPath := setupProject(t, srv.URL)

	out, err := execute(t, "", "run", "--config", cfgPath)
	require.NoError(t, err)

	assert.Contains(t, out, "[1/10] Reading sales data...")
	assert.Contains(t, out, "Parsed 4 records")
	assert.Contains(t, out, "Valid: 3 | Invalid: 1 | Filtered out: 0")
	assert.Contains(t, out, "Enriched 2/3 transactions")
	assert.Contains(t, out, "[10/10] Process complete")

	enriched, err := os.ReadFile(cfg.Data.EnrichedOutput)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(enriched), "\n"), "\n")
	require.Len(t, lines, 4) // header + 3 records
	assert.Contains(t, lines[1], "tools|Acme|4.5|true")
	assert.Contains(t, lines[3], "||||false") // P999 unmatched

	reportData, err := os.ReadFile(cfg.Data.ReportOutput)
	require.NoError(t, err)
	assert.Contains(t, string(reportData), "SALES ANALYTICS REPORT")
	assert.Contains(t, string(reportData), "API ENRICHMENT SUMMARY")
}

func TestRun_RegionFilterFlag(t *testing.T) {
	srv := catalogServer(t)
	_, cfgPath := setupProject(t, srv.URL)

	out, err := execute(t, "", "run", "--config", cfgPath, "--region", "North")
	require.NoError(t, err)
	assert.Contains(t, out, "Valid: 2 | Invalid: 1 | Filtered out: 1")
}

func TestRun_AmountFilterFlags(t *testing.T) {
	srv := catalogServer(t)
	_, cfgPath := setupProject(t, srv.URL)

	// Line amounts: 20.00, 25.00, 15.00 (X4 is invalid).
	out, err := execute(t, "", "run", "--config", cfgPath, "--min", "16", "--max", "24")
	require.NoError(t, err)
	assert.Contains(t, out, "Valid: 1 | Invalid: 1 | Filtered out: 2")
}

func TestRun_BadAmountFlag(t *testing.T) {
	srv := catalogServer(t)
	_, cfgPath := setupProject(t, srv.URL)

	_, err := execute(t, "", "run", "--config", cfgPath, "--min", "lots")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--min")
}

func TestRun_FetchFailureDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	cfg, cfgPath := setupProject(t, srv.URL)

	out, err := execute(t, "", "run", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "catalog fetch failed")
	assert.Contains(t, out, "Enriched 0/3 transactions")
	assert.Contains(t, out, "[10/10] Process complete")

	// Output files are still written, all rows unmatched.
	enriched, err := os.ReadFile(cfg.Data.EnrichedOutput)
	require.NoError(t, err)
	assert.NotContains(t, string(enriched), "true")
}

func TestRun_NoValidTransactionsHalts(t *testing.T) {
	srv := catalogServer(t)
	cfg, cfgPath := setupProject(t, srv.URL)

	_, err := execute(t, "", "run", "--config", cfgPath, "--region", "Atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid transactions")

	// Halt happens before enrichment and report generation.
	_, statErr := os.Stat(cfg.Data.EnrichedOutput)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(cfg.Data.ReportOutput)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_MissingInputFile(t *testing.T) {
	srv := catalogServer(t)
	cfg, cfgPath := setupProject(t, srv.URL)
	require.NoError(t, os.Remove(cfg.Data.Input))

	_, err := execute(t, "", "run", "--config", cfgPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_MissingConfig(t *testing.T) {
	_, err := execute(t, "", "run", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestRun_Interactive(t *testing.T) {
	srv := catalogServer(t)
	_, cfgPath := setupProject(t, srv.URL)

	stdin := "y\nNorth\n\n\n"
	out, err := execute(t, stdin, "run", "--config", cfgPath, "--interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "Regions: North, South")
	assert.Contains(t, out, "Valid: 2 | Invalid: 1 | Filtered out: 1")
}

func TestRun_InteractiveDecline(t *testing.T) {
	srv := catalogServer(t)
	_, cfgPath := setupProject(t, srv.URL)

	out, err := execute(t, "n\n", "run", "--config", cfgPath, "--interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "Proceeding without filters")
	assert.Contains(t, out, "Valid: 3 | Invalid: 1 | Filtered out: 0")
}
