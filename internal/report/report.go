package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/salescope-dev/salescope/internal/analytics"
	"github.com/salescope-dev/salescope/internal/model"
)

// Options controls report sizing.
type Options struct {
	TopProducts          int
	TopCustomers         int
	TrendDays            int
	LowQuantityThreshold int
}

// DefaultOptions returns the standard report sizing.
func DefaultOptions() Options {
	return Options{
		TopProducts:          5,
		TopCustomers:         5,
		TrendDays:            5,
		LowQuantityThreshold: analytics.DefaultLowQuantityThreshold,
	}
}

// unmatchedSampleSize bounds the unmatched-product list in the enrichment
// summary.
const unmatchedSampleSize = 5

const bannerWidth = 50

// Render assembles the full sales report. It is a pure function of its
// inputs apart from the generated-at timestamp supplied by the caller.
func Render(txns []model.ValidatedTransaction, enriched []model.EnrichedTransaction, opts Options, now time.Time) string {
	var b strings.Builder

	writeHeader(&b, len(txns), now)
	writeOverallSummary(&b, txns)
	writeRegionSection(&b, txns)
	writeTopProducts(&b, txns, opts.TopProducts)
	writeTopCustomers(&b, txns, opts.TopCustomers)
	writeDailyTrend(&b, txns, opts.TrendDays)
	writePerformanceNotes(&b, txns, opts.LowQuantityThreshold)
	writeEnrichmentSummary(&b, enriched)

	b.WriteString(strings.Repeat("=", bannerWidth) + "\n")
	return b.String()
}

func writeHeader(b *strings.Builder, count int, now time.Time) {
	bar := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(b, bar)
	fmt.Fprintln(b, center("SALES ANALYTICS REPORT", bannerWidth))
	fmt.Fprintf(b, "Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(b, "Records Processed: %d\n", count)
	fmt.Fprintln(b, bar)
	fmt.Fprintln(b)
}

func writeOverallSummary(b *strings.Builder, txns []model.ValidatedTransaction) {
	total := analytics.TotalRevenue(txns)
	count := len(txns)

	avgOrder := decimal.Zero
	if count > 0 {
		avgOrder = total.Div(decimal.NewFromInt(int64(count)))
	}

	fmt.Fprintln(b, "OVERALL SUMMARY")
	fmt.Fprintln(b, strings.Repeat("-", 45))
	fmt.Fprintf(b, "Total Revenue:       %s\n", money(total))
	fmt.Fprintf(b, "Total Transactions:  %d\n", count)
	fmt.Fprintf(b, "Average Order Value: %s\n", money(avgOrder))
	fmt.Fprintf(b, "Date Range:          %s\n", dateRange(txns))
	fmt.Fprintln(b)
}

func writeRegionSection(b *strings.Builder, txns []model.ValidatedTransaction) {
	fmt.Fprintln(b, "REGION-WISE PERFORMANCE")

	var rows [][]string
	for _, r := range analytics.RegionWiseSales(txns) {
		rows = append(rows, []string{
			r.Region,
			money(r.TotalSales),
			r.Percentage.StringFixed(2) + "%",
			strconv.Itoa(r.TransactionCount),
		})
	}
	writeTable(b, []string{"Region", "Sales", "% of Total", "Tx Count"}, rows)
	fmt.Fprintln(b)
}

func writeTopProducts(b *strings.Builder, txns []model.ValidatedTransaction, n int) {
	fmt.Fprintf(b, "TOP %d PRODUCTS\n", n)

	var rows [][]string
	for i, p := range analytics.TopSellingProducts(txns, n) {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			p.Name,
			strconv.Itoa(p.Quantity),
			money(p.Revenue),
		})
	}
	writeTable(b, []string{"Rank", "Product Name", "Qty Sold", "Revenue"}, rows)
	fmt.Fprintln(b)
}

func writeTopCustomers(b *strings.Builder, txns []model.ValidatedTransaction, n int) {
	fmt.Fprintf(b, "TOP %d CUSTOMERS\n", n)

	customers := analytics.CustomerAnalysis(txns)
	if len(customers) > n {
		customers = customers[:n]
	}

	var rows [][]string
	for i, c := range customers {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			c.CustomerID,
			money(c.TotalSpent),
			strconv.Itoa(c.PurchaseCount),
		})
	}
	writeTable(b, []string{"Rank", "Cust ID", "Total Spent", "Orders"}, rows)
	fmt.Fprintln(b)
}

func writeDailyTrend(b *strings.Builder, txns []model.ValidatedTransaction, days int) {
	fmt.Fprintf(b, "DAILY SALES TREND (Last %d Days)\n", days)

	trend := analytics.DailySalesTrend(txns)
	if len(trend) > days {
		trend = trend[len(trend)-days:]
	}

	var rows [][]string
	for _, d := range trend {
		rows = append(rows, []string{
			d.Date,
			money(d.Revenue),
			strconv.Itoa(d.TransactionCount),
			strconv.Itoa(d.UniqueCustomers),
		})
	}
	writeTable(b, []string{"Date", "Revenue", "Tx Count", "Unique Cust"}, rows)
	fmt.Fprintln(b)
}

func writePerformanceNotes(b *strings.Builder, txns []model.ValidatedTransaction, threshold int) {
	fmt.Fprintln(b, "PRODUCT PERFORMANCE ANALYSIS")
	fmt.Fprintln(b, strings.Repeat("-", 45))

	if peak, ok := analytics.FindPeakSalesDay(txns); ok {
		fmt.Fprintf(b, "Best Selling Day: %s (%s)\n", peak.Date, money(peak.Revenue))
	}

	low := analytics.LowPerformingProducts(txns, threshold)
	fmt.Fprintf(b, "Low Performing Products (<%d units): %d\n", threshold, len(low))
	if len(low) > 0 {
		fmt.Fprintf(b, "  Example: %s (%d sold)\n", low[0].Name, low[0].Quantity)
	}

	fmt.Fprintln(b)
	fmt.Fprintln(b, "Average Transaction Value by Region:")
	for _, r := range analytics.RegionWiseSales(txns) {
		avg := r.TotalSales.Div(decimal.NewFromInt(int64(r.TransactionCount)))
		fmt.Fprintf(b, "  %s: %s\n", r.Region, money(avg))
	}
	fmt.Fprintln(b)
}

func writeEnrichmentSummary(b *strings.Builder, enriched []model.EnrichedTransaction) {
	fmt.Fprintln(b, "API ENRICHMENT SUMMARY")
	fmt.Fprintln(b, strings.Repeat("-", 45))

	// Unique ProductIDs in first-encountered order so the unmatched sample
	// is deterministic.
	seen := make(map[string]bool)
	matched := make(map[string]bool)
	var unique, unmatched []string
	for _, t := range enriched {
		if !seen[t.ProductID] {
			seen[t.ProductID] = true
			unique = append(unique, t.ProductID)
		}
		if t.APIMatch {
			matched[t.ProductID] = true
		}
	}
	for _, id := range unique {
		if !matched[id] {
			unmatched = append(unmatched, id)
		}
	}

	successRate := decimal.Zero
	if len(unique) > 0 {
		successRate = decimal.NewFromInt(int64(len(matched))).
			Div(decimal.NewFromInt(int64(len(unique)))).
			Mul(decimal.NewFromInt(100))
	}

	fmt.Fprintf(b, "Total Unique Products: %d\n", len(unique))
	fmt.Fprintf(b, "Successfully Enriched: %d\n", len(matched))
	fmt.Fprintf(b, "Success Rate:          %s%%\n", successRate.StringFixed(1))
	if len(unmatched) > 0 {
		sample := unmatched
		if len(sample) > unmatchedSampleSize {
			sample = sample[:unmatchedSampleSize]
		}
		fmt.Fprintf(b, "Failed to enrich:      %s\n", strings.Join(sample, ", "))
	}
}

func writeTable(b *strings.Builder, headers []string, rows [][]string) {
	t := tablewriter.NewWriter(b)
	t.SetHeader(headers)
	t.SetAutoWrapText(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.AppendBulk(rows)
	t.Render()
}

func dateRange(txns []model.ValidatedTransaction) string {
	if len(txns) == 0 {
		return "N/A"
	}
	dates := make([]string, 0, len(txns))
	for _, t := range txns {
		dates = append(dates, t.Date)
	}
	sort.Strings(dates)
	return dates[0] + " to " + dates[len(dates)-1]
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

// money formats a decimal as $1,234.56.
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := "$" + strings.Join(groups, ",") + frac
	if neg {
		out = "-" + out
	}
	return out
}
