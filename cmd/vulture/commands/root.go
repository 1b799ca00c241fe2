package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vulture",
	Short: "Vulture - 세력 매집 흔적 스캐너 & M&A 사전 징후 감지",
	Long: `Vulture CLI

숨은 매집 주체의 흔적을 거래량과 가격 패턴에서 찾아내고,
M&A 가능성이 높은 종목을 뉴스와 수급으로 점수화합니다.

Usage:
  go run ./cmd/vulture [command]

Examples:
  go run ./cmd/vulture scan --segment kosdaq
  go run ./cmd/vulture scan --segment custom --codes 005930,000660
  go run ./cmd/vulture ma 005930
  go run ./cmd/vulture monitor
  go run ./cmd/vulture api`,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
