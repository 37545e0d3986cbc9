package scatter

import (
	"fmt"

	"github.com/Faultbox/vertex-scatter/pkg/host"
)

// SelectionPair is the ordered (scatter object, target mesh) pair.
type SelectionPair struct {
	Source host.ObjectID
	Target host.ObjectID
}

// PairFromSelection builds a pair from a selection list holding exactly two
// objects: the first is scattered onto the second.
func PairFromSelection(ids []host.ObjectID) (SelectionPair, error) {
	if len(ids) != 2 {
		return SelectionPair{}, fmt.Errorf("%w: got %d", ErrInvalidSelection, len(ids))
	}
	return SelectionPair{Source: ids[0], Target: ids[1]}, nil
}

// ReadSelection asks the host for its selection and builds a pair from it.
func ReadSelection(sel host.Selection) (SelectionPair, error) {
	ids, err := sel.Selected()
	if err != nil {
		return SelectionPair{}, fmt.Errorf("reading selection: %w", err)
	}
	return PairFromSelection(ids)
}

// Swap returns the pair with source and target exchanged.
func (p SelectionPair) Swap() SelectionPair {
	return SelectionPair{Source: p.Target, Target: p.Source}
}

// IsZero reports whether neither side has been set.
func (p SelectionPair) IsZero() bool {
	return p.Source == "" && p.Target == ""
}

// String returns "source -> target".
func (p SelectionPair) String() string {
	return fmt.Sprintf("%s -> %s", p.Source, p.Target)
}
