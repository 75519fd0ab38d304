package history

import "fmt"

// Checkpoint represents a point in history that can be returned to.
type Checkpoint struct {
	undoDepth int
}

// Checkpoint creates a checkpoint at the current history position.
func (l *Log) Checkpoint() Checkpoint {
	return Checkpoint{undoDepth: len(l.undoStack)}
}

// UndoToCheckpoint undoes all operations recorded since the checkpoint and
// returns the start offset of the last reverted region. If entries older
// than the checkpoint were dropped by the stack cap, only what remains is
// undone.
func (l *Log) UndoToCheckpoint(cp Checkpoint) (offset int, err error) {
	if len(l.undoStack) <= cp.undoDepth {
		return 0, ErrNothingToUndo
	}
	for len(l.undoStack) > cp.undoDepth {
		offset, _, err = l.Undo()
		if err != nil {
			return 0, fmt.Errorf("undo to checkpoint: %w", err)
		}
	}
	return offset, nil
}

// Transaction runs fn and, if it fails, reverts every operation it
// recorded before returning its error.
func (l *Log) Transaction(fn func() error) error {
	cp := l.Checkpoint()
	if err := fn(); err != nil {
		if len(l.undoStack) > cp.undoDepth {
			if _, rerr := l.UndoToCheckpoint(cp); rerr != nil {
				return fmt.Errorf("%w (rollback failed: %v)", err, rerr)
			}
		}
		return err
	}
	return nil
}
