package analyzer

import (
	"fmt"
	"strings"

	"github.com/diffeners/deepinsight/pkg/models"
)

// newsSummaryLimit bounds each news summary before the overall character
// budget is applied.
const newsSummaryLimit = 100

// buildPrompt assembles the structured analyst prompt: fund identity, the
// signal, ranked holdings contributions, and clipped news.
func buildPrompt(req Request, maxHoldings, maxNews, newsCharBudget int) string {
	holdings := req.Holdings
	if maxHoldings > 0 && len(holdings) > maxHoldings {
		holdings = holdings[:maxHoldings]
	}
	var holdingLines []string
	for _, h := range holdings {
		holdingLines = append(holdingLines, fmt.Sprintf(
			"- %s (%s): weight %.1f%%, change %+.2f%%, contribution %+.3f%%",
			h.Stock, h.Code, h.WeightPct, h.ChangePct, h.ContributionPct,
		))
	}

	newsText := clipNews(req.News, maxNews, newsCharBudget)

	var b strings.Builder
	b.WriteString("You are a senior fund research analyst. Analyze the fund below in depth and show your reasoning.\n\n")

	b.WriteString("## Fund\n")
	fmt.Fprintf(&b, "- Code: %s\n", req.FundCode)
	fmt.Fprintf(&b, "- Name: %s\n", req.FundName)
	fmt.Fprintf(&b, "- Daily change: %+.2f%%\n\n", req.ChangePct)

	b.WriteString("## Top holdings contribution\n")
	if len(holdingLines) > 0 {
		b.WriteString(strings.Join(holdingLines, "\n"))
	} else {
		b.WriteString("(no holdings data)")
	}
	b.WriteString("\n\n")

	b.WriteString("## Recent news (past 12 hours)\n")
	if newsText != "" {
		b.WriteString(newsText)
	} else {
		b.WriteString("(no recent news)")
	}
	b.WriteString("\n\n")

	b.WriteString("## Required analysis\n")
	b.WriteString("1. Is this move sentiment noise or a fundamental reversal?\n")
	b.WriteString("2. Check for hidden position changes (valuation diverging from holdings performance).\n")
	b.WriteString("3. Give a clear investment recommendation.\n\n")

	b.WriteString("## Output format\n")
	b.WriteString("### Reasoning\n### Nature of the move\n### Position change assessment\n### Risk warning\n### Recommendation\n")

	return b.String()
}

// clipNews renders at most maxNews items, each summary capped at
// newsSummaryLimit characters, and stops once the running total would exceed
// charBudget. The budget is a cost-control contract: input tokens are bounded
// before the prompt is ever assembled.
func clipNews(items []models.NewsItem, maxNews, charBudget int) string {
	if maxNews > 0 && len(items) > maxNews {
		items = items[:maxNews]
	}

	var lines []string
	total := 0
	for _, n := range items {
		summary := n.Summary
		if len(summary) > newsSummaryLimit {
			summary = summary[:newsSummaryLimit]
		}
		line := fmt.Sprintf("- [%s] %s: %s", n.Source, n.Title, summary)
		if charBudget > 0 && total+len(line) > charBudget {
			break
		}
		lines = append(lines, line)
		total += len(line)
	}
	return strings.Join(lines, "\n")
}
