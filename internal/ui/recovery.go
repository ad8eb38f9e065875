package ui

import (
	"fmt"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// SafeModel wraps the root model so a panic while handling one message is
// logged instead of tearing down the terminal.
type SafeModel struct {
	model  tea.Model
	logger *zap.Logger
}

// NewSafeModel wraps model with panic recovery
func NewSafeModel(model tea.Model, logger *zap.Logger) *SafeModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SafeModel{
		model:  model,
		logger: logger,
	}
}

// Init wraps the Init method with panic recovery
func (sm *SafeModel) Init() (cmd tea.Cmd) {
	defer sm.recoverFromPanic("Init", &cmd)
	return sm.model.Init()
}

// Update wraps the Update method with panic recovery. The wrapped model is
// kept as it was before the failing message.
func (sm *SafeModel) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	model = sm
	defer sm.recoverFromPanic("Update", &cmd)
	updated, cmd := sm.model.Update(msg)
	sm.model = updated
	return sm, cmd
}

// View wraps the View method with panic recovery
func (sm *SafeModel) View() (view string) {
	defer func() {
		if r := recover(); r != nil {
			sm.logger.Error("View panic recovered",
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())))
			view = "UI Error: View crashed. Press Ctrl+C to exit."
		}
	}()
	return sm.model.View()
}

// recoverFromPanic turns a panic into an ErrorMsg shown on the status line.
func (sm *SafeModel) recoverFromPanic(method string, cmd *tea.Cmd) {
	if r := recover(); r != nil {
		sm.logger.Error("UI method panic recovered",
			zap.String("method", method),
			zap.Any("panic", r),
			zap.String("stack", string(debug.Stack())))
		err := fmt.Errorf("%s panic: %v", method, r)
		*cmd = func() tea.Msg { return ErrorMsg{Error: err, Title: "Internal error"} }
	}
}

// SafeCmd runs cmd with panic recovery. Commands run on their own
// goroutine, where an unrecovered panic would kill the program.
func SafeCmd(logger *zap.Logger, name string, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				if logger != nil {
					logger.Error("Command panic recovered",
						zap.String("command", name),
						zap.Any("panic", r),
						zap.String("stack", string(debug.Stack())))
				}
				msg = ErrorMsg{Error: fmt.Errorf("%s panic: %v", name, r), Title: "Internal error"}
			}
		}()
		return cmd()
	}
}
