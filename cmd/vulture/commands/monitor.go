package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/vulture/internal/monitor"
	"github.com/wonny/vulture/internal/notify"
	"github.com/wonny/vulture/pkg/database"
)

var (
	monitorAdd    string
	monitorRemove string
)

// monitorCmd represents the monitor command
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "감시 목록 점검 및 관리",
	Long: `감시 목록 전체를 한 번 재점수하고 변화가 있으면 알립니다.

Examples:
  go run ./cmd/vulture monitor
  go run ./cmd/vulture monitor --add 005930
  go run ./cmd/vulture monitor --remove 005930`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)

	monitorCmd.Flags().StringVar(&monitorAdd, "add", "", "감시 목록에 추가할 종목코드")
	monitorCmd.Flags().StringVar(&monitorRemove, "remove", "", "감시 목록에서 제외할 종목코드")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := context.Background()
	db, err := database.New(ctx, a.cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	repo := monitor.NewRepository(db.Pool)

	if monitorAdd != "" {
		name := monitorAdd
		if snapshot, err := a.fetcher.Fetch(ctx, monitorAdd); err == nil && snapshot.Name != "" {
			name = snapshot.Name
		}
		if err := repo.AddToWatchlist(ctx, monitorAdd, name); err != nil {
			return err
		}
		fmt.Printf("감시 등록: %s(%s)\n", name, monitorAdd)
		return nil
	}

	if monitorRemove != "" {
		if err := repo.RemoveFromWatchlist(ctx, monitorRemove); err != nil {
			return err
		}
		fmt.Printf("감시 해제: %s\n", monitorRemove)
		return nil
	}

	notifier := notify.New(a.cfg.Notify, a.log)
	svc := monitor.NewService(repo, a.fetcher, a.scorer, notifier, a.cfg.Monitor, a.log)
	svc.OnAlert(func(alert monitor.Alert) {
		fmt.Printf("🚨 %s\n", alert.Message)
	})

	fmt.Println("=== 감시 사이클 실행 ===")
	if err := svc.Run(ctx); err != nil {
		return fmt.Errorf("monitoring cycle: %w", err)
	}
	fmt.Println("완료")
	return nil
}
