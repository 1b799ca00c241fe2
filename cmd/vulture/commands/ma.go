package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/vulture/internal/contracts"
)

// maCmd represents the ma command
var maCmd = &cobra.Command{
	Use:   "ma [stock code]",
	Short: "M&A 사전 징후 분석",
	Long: `한 종목의 M&A 가능성을 뉴스, 수급, 밸류에이션으로 점수화합니다.

Example:
  go run ./cmd/vulture ma 005930`,
	Args: cobra.ExactArgs(1),
	RunE: runMA,
}

func init() {
	rootCmd.AddCommand(maCmd)
}

func runMA(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	code := args[0]
	ctx := context.Background()

	snapshot, err := a.fetcher.Fetch(ctx, code)
	if err != nil {
		return fmt.Errorf("fetch snapshot: %w", err)
	}

	score, err := a.scorer.Analyze(ctx, snapshot)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	fmt.Printf("=== M&A 사전 징후 분석: %s(%s) ===\n\n", score.Name, score.Code)
	fmt.Printf("판정: %s %s (%d점)\n\n", maTierEmoji(score.Tier), score.Tier, score.Total)
	fmt.Printf("  뉴스        %2d / 40\n", score.News)
	fmt.Printf("  거래 이상   %2d / 30\n", score.Volume)
	fmt.Printf("  밸류에이션  %2d / 20\n", score.Valuation)
	fmt.Printf("  차트        %2d / 10\n", score.Technical)
	if score.ExclusionPenalty > 0 {
		fmt.Printf("  제외 감점  -%d (%v)\n", score.ExclusionPenalty, score.ExclusionFlags)
	}

	if len(score.ReasonTags) > 0 {
		fmt.Println("\n근거:")
		for _, tag := range score.ReasonTags {
			fmt.Printf("  - %s\n", tag)
		}
	}
	if len(score.NewsItems) > 0 {
		fmt.Println("\n관련 뉴스:")
		for _, item := range score.NewsItems {
			if item.Severity != contracts.SeverityNone {
				fmt.Printf("  [%s] %s\n", item.Severity, item.Title)
			}
		}
	}
	return nil
}

func maTierEmoji(tier contracts.MATier) string {
	switch tier {
	case contracts.MATierCritical:
		return "🔴"
	case contracts.MATierHigh:
		return "🟠"
	case contracts.MATierMedium:
		return "🟡"
	case contracts.MATierLow:
		return "🟢"
	default:
		return "⚪"
	}
}
