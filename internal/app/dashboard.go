package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/bibliodash/internal/store"
	"github.com/blackwell-systems/bibliodash/internal/unified"
)

// runDashboard starts the full-screen dashboard and blocks until it quits.
func runDashboard(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := unified.New(ctx, svc, store.New(), unified.Settings{
		BaseURL:        client.BaseURL(),
		ToastDuration:  cfg.UI.ToastDuration,
		LoanPeriodDays: cfg.UI.LoanPeriodDays,
		DateLayout:     cfg.UI.DateLayout,
	})
	logger.Info("dashboard started")

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
