package minter

// journal records undo steps of a single contract call so that a failing call
// leaves no trace of its intermediate mutations.
type journal struct {
	undo []func()
}

func (j *journal) record(fn func()) {
	if fn != nil {
		j.undo = append(j.undo, fn)
	}
}

// revert runs the recorded steps in reverse order and clears the journal
func (j *journal) revert() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}
