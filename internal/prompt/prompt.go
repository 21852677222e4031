package prompt

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/salescope-dev/salescope/internal/model"
)

// Collect runs the interactive filter dialog over r/w and returns the
// chosen criteria. A region not among those observed in txns is skipped,
// as is any bound that does not parse as a number. Read failures end the
// dialog with whatever was collected so far.
func Collect(r io.Reader, w io.Writer, txns []model.Transaction) model.FilterCriteria {
	br := bufio.NewReader(r)

	regions := observedRegions(txns)
	fmt.Fprintf(w, "Regions: %s\n", strings.Join(regions, ", "))

	if minAmt, maxAmt, ok := amountRange(txns); ok {
		fmt.Fprintf(w, "Amount Range: %s - %s\n", minAmt.StringFixed(0), maxAmt.StringFixed(0))
	} else {
		fmt.Fprintln(w, "Amount Range: N/A")
	}

	fmt.Fprint(w, "\nDo you want to filter data? (y/n): ")
	if strings.ToLower(readLine(br)) != "y" {
		return model.FilterCriteria{}
	}

	var criteria model.FilterCriteria
	fmt.Fprintln(w, "\n--- Enter Filter Criteria (Press Enter to skip) ---")

	fmt.Fprintf(w, "Enter Region (%s): ", strings.Join(regions, ", "))
	if region := readLine(br); contains(regions, region) {
		criteria.Region = region
	}

	fmt.Fprint(w, "Enter Minimum Amount: ")
	if d, err := decimal.NewFromString(readLine(br)); err == nil {
		criteria.MinAmount = &d
	}

	fmt.Fprint(w, "Enter Maximum Amount: ")
	if d, err := decimal.NewFromString(readLine(br)); err == nil {
		criteria.MaxAmount = &d
	}

	return criteria
}

// observedRegions returns the distinct non-empty regions, sorted.
func observedRegions(txns []model.Transaction) []string {
	seen := make(map[string]bool)
	var regions []string
	for _, t := range txns {
		if t.Region == "" || seen[t.Region] {
			continue
		}
		seen[t.Region] = true
		regions = append(regions, t.Region)
	}
	sort.Strings(regions)
	return regions
}

func amountRange(txns []model.Transaction) (minAmt, maxAmt decimal.Decimal, ok bool) {
	if len(txns) == 0 {
		return decimal.Zero, decimal.Zero, false
	}
	minAmt = txns[0].LineAmount()
	maxAmt = minAmt
	for _, t := range txns[1:] {
		amount := t.LineAmount()
		if amount.LessThan(minAmt) {
			minAmt = amount
		}
		if amount.GreaterThan(maxAmt) {
			maxAmt = amount
		}
	}
	return minAmt, maxAmt, true
}

func readLine(br *bufio.Reader) string {
	line, err := br.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
