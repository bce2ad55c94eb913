package cli

import "github.com/alexanderramin/focuslog/internal/app"

func (a *App) logSessionUseCase() app.LogSessionUseCase {
	if a.LogSession != nil {
		return a.LogSession
	}
	return a.Sessions
}
