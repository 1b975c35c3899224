package get_slots

import (
	"context"

	resolveSlots "github.com/m04kA/SMC-RitualService/internal/usecase/resolve_slots"
)

type ResolveSlotsUseCase interface {
	Execute(ctx context.Context, req *resolveSlots.Request) (*resolveSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
