package engine

import (
	"log/slog"

	"github.com/piwi3910/PlankLay/internal/model"
)

// BoardFactory hands out boards from a bounded fresh stock and an unbounded
// LIFO stack of reusable offcuts. It is not safe for concurrent use; layouts
// sharing one factory must run one after another.
type BoardFactory struct {
	profile   model.SupplyProfile
	stack     []*model.Board
	remaining int
	issued    int
	reused    int
	logger    *slog.Logger
}

// NewBoardFactory creates a factory holding profile.Capacity fresh boards.
// It fails for profiles that could issue a board without positive size.
// A nil logger falls back to slog.Default().
func NewBoardFactory(profile model.SupplyProfile, logger *slog.Logger) (*BoardFactory, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BoardFactory{
		profile:   profile,
		remaining: profile.Capacity,
		logger:    logger,
	}, nil
}

// Acquire returns the most recently released offcut if there is one,
// otherwise a fresh board. It returns false once both are used up.
func (f *BoardFactory) Acquire() (*model.Board, bool) {
	if n := len(f.stack); n > 0 {
		b := f.stack[n-1]
		f.stack[n-1] = nil
		f.stack = f.stack[:n-1]
		f.reused++
		f.logger.Debug("factory: pop", "board", b.String(), "stacked", len(f.stack))
		return b, true
	}

	if f.remaining <= 0 {
		f.logger.Warn("factory: no more boards",
			"profile", f.profile.Name, "issued", f.issued, "reused", f.reused)
		return nil, false
	}

	f.remaining--
	f.issued++
	length := f.profile.DefaultLength
	if f.issued == 1 {
		length -= f.profile.FirstBoardShortenBy
	}
	b := model.NewBoard(length, f.profile.DefaultWidth)
	b.Serial = f.issued
	f.logger.Debug("factory: fresh board", "board", b.String(), "left", f.remaining)
	return b, true
}

// Release pushes b onto the reuse stack. The caller must not touch b afterwards.
func (f *BoardFactory) Release(b *model.Board) {
	f.logger.Debug("factory: push", "board", b.String(), "stacked", len(f.stack)+1)
	f.stack = append(f.stack, b)
}

// Profile returns the profile the factory was created with.
func (f *BoardFactory) Profile() model.SupplyProfile {
	return f.profile
}

// Remaining returns the number of fresh boards not yet issued.
func (f *BoardFactory) Remaining() int {
	return f.remaining
}

// Stacked returns the number of offcuts waiting for reuse.
func (f *BoardFactory) Stacked() int {
	return len(f.stack)
}

// FreshIssued returns how many fresh boards have been handed out.
func (f *BoardFactory) FreshIssued() int {
	return f.issued
}

// Reused returns how many offcuts have been handed out again.
func (f *BoardFactory) Reused() int {
	return f.reused
}

// Offcuts returns copies of the stacked offcuts, top of the stack first.
func (f *BoardFactory) Offcuts() []model.Board {
	out := make([]model.Board, 0, len(f.stack))
	for i := len(f.stack) - 1; i >= 0; i-- {
		out = append(out, *f.stack[i])
	}
	return out
}
