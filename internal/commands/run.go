package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/salescope-dev/salescope/internal/analytics"
	"github.com/salescope-dev/salescope/internal/catalog"
	"github.com/salescope-dev/salescope/internal/config"
	"github.com/salescope-dev/salescope/internal/model"
	"github.com/salescope-dev/salescope/internal/parser"
	"github.com/salescope-dev/salescope/internal/prompt"
	"github.com/salescope-dev/salescope/internal/report"
	"github.com/salescope-dev/salescope/internal/salesfile"
	"github.com/salescope-dev/salescope/internal/validate"
)

func newRunCommand() *cobra.Command {
	var cfgPath string
	var interactive bool
	var region string
	var minAmount string
	var maxAmount string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the sales analytics pipeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			criteria, err := criteriaFromFlags(region, minAmount, maxAmount)
			if err != nil {
				return err
			}

			return runPipeline(cmd.Context(), cmd.OutOrStdout(), cmd.InOrStdin(), cfg, criteria, interactive)
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "salescope.yaml", "config file path")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "prompt for filter criteria")
	cmd.Flags().StringVar(&region, "region", "", "only include transactions from this region")
	cmd.Flags().StringVar(&minAmount, "min", "", "minimum line amount (inclusive)")
	cmd.Flags().StringVar(&maxAmount, "max", "", "maximum line amount (inclusive)")

	return cmd
}

func criteriaFromFlags(region, minAmount, maxAmount string) (model.FilterCriteria, error) {
	criteria := model.FilterCriteria{Region: region}

	if minAmount != "" {
		d, err := decimal.NewFromString(minAmount)
		if err != nil {
			return model.FilterCriteria{}, fmt.Errorf("parsing --min %q: %w", minAmount, err)
		}
		criteria.MinAmount = &d
	}
	if maxAmount != "" {
		d, err := decimal.NewFromString(maxAmount)
		if err != nil {
			return model.FilterCriteria{}, fmt.Errorf("parsing --max %q: %w", maxAmount, err)
		}
		criteria.MaxAmount = &d
	}
	return criteria, nil
}

func runPipeline(ctx context.Context, out io.Writer, in io.Reader, cfg *config.Config, criteria model.FilterCriteria, interactive bool) error {
	bar := strings.Repeat("=", 40)
	fmt.Fprintln(out, bar)
	fmt.Fprintln(out, "SALES ANALYTICS SYSTEM")
	fmt.Fprintln(out, bar)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[1/10] Reading sales data...")
	lines, err := salesfile.ReadRawLines(cfg.Data.Input)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return fmt.Errorf("no data found in %s", cfg.Data.Input)
	}
	fmt.Fprintf(out, "Read %d raw lines\n\n", len(lines))

	fmt.Fprintln(out, "[2/10] Parsing and cleaning data...")
	parsed := parser.Parse(lines)
	fmt.Fprintf(out, "Parsed %d records\n\n", len(parsed))

	fmt.Fprintln(out, "[3/10] Filter options...")
	if interactive {
		criteria = prompt.Collect(in, out, parsed)
	}
	if criteria.IsZero() {
		fmt.Fprintln(out, "Proceeding without filters")
	} else {
		fmt.Fprintln(out, "Filters applied")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[4/10] Validating transactions...")
	valid, sum := validate.Apply(parsed, criteria)
	fmt.Fprintf(out, "Valid: %d | Invalid: %d | Filtered out: %d\n\n", sum.FinalCount, sum.Invalid, sum.FilteredOut)
	if len(valid) == 0 {
		return fmt.Errorf("no valid transactions left to analyze")
	}

	fmt.Fprintln(out, "[5/10] Analyzing sales data...")
	fmt.Fprintf(out, "Total revenue: %s across %d regions\n\n",
		analytics.TotalRevenue(valid).StringFixed(2), len(analytics.RegionWiseSales(valid)))

	fmt.Fprintln(out, "[6/10] Fetching product data from catalog...")
	client := catalog.NewClient(cfg.Catalog.URL, cfg.Catalog.Limit, time.Duration(cfg.Catalog.TimeoutSeconds)*time.Second)
	products, err := client.FetchProducts(ctx)
	if err != nil {
		fmt.Fprintf(out, "Warning: catalog fetch failed (%v); proceeding without enrichment\n\n", err)
		products = nil
	} else {
		fmt.Fprintf(out, "Fetched %d products\n\n", len(products))
	}

	fmt.Fprintln(out, "[7/10] Enriching sales data...")
	enriched := catalog.Enrich(valid, catalog.BuildMapping(products))
	matches := 0
	for _, e := range enriched {
		if e.APIMatch {
			matches++
		}
	}
	fmt.Fprintf(out, "Enriched %d/%d transactions\n\n", matches, len(enriched))

	fmt.Fprintln(out, "[8/10] Saving enriched data...")
	if err := salesfile.SaveEnriched(cfg.Data.EnrichedOutput, enriched); err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved to %s\n\n", cfg.Data.EnrichedOutput)

	fmt.Fprintln(out, "[9/10] Generating report...")
	opts := report.Options{
		TopProducts:          cfg.Report.TopProducts,
		TopCustomers:         cfg.Report.TopCustomers,
		TrendDays:            cfg.Report.TrendDays,
		LowQuantityThreshold: cfg.Report.LowQuantityThreshold,
	}
	content := report.Render(valid, enriched, opts, time.Now())
	if err := salesfile.WriteReport(cfg.Data.ReportOutput, content); err != nil {
		return err
	}
	fmt.Fprintf(out, "Report saved to %s\n\n", cfg.Data.ReportOutput)

	fmt.Fprintln(out, "[10/10] Process complete")
	fmt.Fprintln(out, bar)
	return nil
}
