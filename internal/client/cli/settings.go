package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/stockdash/internal/client/router"
	"github.com/dmitrijs2005/stockdash/internal/client/services"
)

const msgSettingsSaved = "Settings saved"

// Settings opens the settings view.
func (a *App) Settings(ctx context.Context) error {
	return a.Open(ctx, router.PathSettings)
}

func (a *App) settingsView(ctx context.Context) error {
	p, err := a.prefService.Load(ctx)
	if err != nil {
		a.handleError(ctx, err)
		return err
	}
	renderSettings(a.out, p)
	return nil
}

// Set toggles one preference: set <emails|dark> <on|off>.
func (a *App) Set(ctx context.Context, args []string) error {
	if len(args) != 2 || (args[0] != services.PrefEmails && args[0] != services.PrefDark) ||
		(args[1] != "on" && args[1] != "off") {
		printlnFn("Usage: set <emails|dark> <on|off>")
		return fmt.Errorf("%w: set %v", errUsage, args)
	}
	if _, err := a.require(ctx, router.PathSettings); err != nil {
		return err
	}

	p, err := a.prefService.Set(ctx, args[0], args[1] == "on")
	if err != nil {
		a.handleError(ctx, err)
		return err
	}
	a.notifier.Success(msgSettingsSaved)
	renderSettings(a.out, p)
	return nil
}
