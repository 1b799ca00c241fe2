package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/internal/scan"
)

var (
	scanSegment string
	scanCodes   string
	scanTop     int
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "매집 흔적 스캔 실행",
	Long: `전 종목(또는 지정 구간)을 스캔해서 매집 흔적 점수를 매깁니다.

Examples:
  go run ./cmd/vulture scan
  go run ./cmd/vulture scan --segment kosdaq
  go run ./cmd/vulture scan --segment quick
  go run ./cmd/vulture scan --segment custom --codes 005930,000660`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanSegment, "segment", "all", "스캔 구간 (all|kospi|kosdaq|quick|custom)")
	scanCmd.Flags().StringVar(&scanCodes, "codes", "", "custom 구간용 종목코드 (쉼표 구분)")
	scanCmd.Flags().IntVar(&scanTop, "top", 30, "출력할 상위 종목 수")
}

func runScan(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	var codes []string
	if scanCodes != "" {
		for _, code := range strings.Split(scanCodes, ",") {
			if code = strings.TrimSpace(code); code != "" {
				codes = append(codes, code)
			}
		}
	}

	fmt.Printf("=== Vulture 매집 스캔 (%s) ===\n", scanSegment)
	started := time.Now()

	ctx := context.Background()
	signals, err := a.scanner.Scan(ctx, scan.Options{
		Segment: scanSegment,
		Codes:   codes,
		OnProgress: func(completed, total int, label string) {
			fmt.Printf("\r수집 진행: %d/%d (%s)    ", completed, total, label)
		},
	})
	if err != nil {
		fmt.Println()
		return fmt.Errorf("scan failed: %w", err)
	}
	fmt.Printf("\n완료: %d개 시그널, 소요 %s\n\n", len(signals), time.Since(started).Round(time.Second))

	printSignals(signals, scanTop)
	return nil
}

func printSignals(signals []contracts.Signal, top int) {
	if len(signals) == 0 {
		fmt.Println("게이트를 통과한 종목이 없습니다.")
		return
	}
	if top > 0 && len(signals) > top {
		signals = signals[:top]
	}

	fmt.Printf("%-4s %-8s %-16s %6s %6s %6s %6s %6s  %s\n",
		"등급", "코드", "종목명", "합계", "은밀", "위치", "이상", "보너스", "근거")
	fmt.Println(strings.Repeat("-", 100))

	for _, s := range signals {
		reasons := ""
		if len(s.Reasons) > 0 {
			reasons = s.Reasons[0]
			if len(s.Reasons) > 1 {
				reasons += fmt.Sprintf(" 외 %d건", len(s.Reasons)-1)
			}
		}
		fmt.Printf("%-4s %-8s %-16s %6d %6d %6d %6d %6d  %s\n",
			tierEmoji(s.Tier), s.Code, truncate(s.Name, 16),
			s.Total, s.Stealth, s.Board, s.VolumeCritical, s.Bonus, reasons)
	}
}

func tierEmoji(tier contracts.Tier) string {
	switch tier {
	case contracts.TierLockon:
		return "🎯"
	case contracts.TierHigh:
		return "🟠"
	case contracts.TierMedium:
		return "🟡"
	default:
		return "🟢"
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
