package graph

import (
	"errors"
	"iter"

	"github.com/wbrown/janus-owl/ontology"
)

// Op is one effective write made through a Recorder.
type Op struct {
	Triple ontology.Triple
	Added  bool // false for a deletion
}

// Recorder wraps a Graph and logs every write that actually changed it, so
// a failed mutation can be undone by replaying the inverse writes in reverse
// order.
type Recorder struct {
	g   Graph
	log []Op
}

// NewRecorder starts an empty undo log over g.
func NewRecorder(g Graph) *Recorder {
	return &Recorder{g: g}
}

func (r *Recorder) Add(t ontology.Triple) (bool, error) {
	changed, err := r.g.Add(t)
	if changed {
		r.log = append(r.log, Op{Triple: t, Added: true})
	}
	return changed, err
}

func (r *Recorder) Delete(t ontology.Triple) (bool, error) {
	changed, err := r.g.Delete(t)
	if changed {
		r.log = append(r.log, Op{Triple: t, Added: false})
	}
	return changed, err
}

func (r *Recorder) Contains(t ontology.Triple) (bool, error) { return r.g.Contains(t) }

func (r *Recorder) Find(s, p, o ontology.Node) iter.Seq2[ontology.Triple, error] {
	return r.g.Find(s, p, o)
}

func (r *Recorder) Size() (int, error) { return r.g.Size() }

// Log returns the writes recorded so far.
func (r *Recorder) Log() []Op {
	return r.log
}

// Commit forgets the log; the writes stay.
func (r *Recorder) Commit() {
	r.log = nil
}

// Rollback undoes every recorded write, newest first. All inverse writes are
// attempted even if some fail; the errors are joined.
func (r *Recorder) Rollback() error {
	var errs []error
	for i := len(r.log) - 1; i >= 0; i-- {
		op := r.log[i]
		var err error
		if op.Added {
			_, err = r.g.Delete(op.Triple)
		} else {
			_, err = r.g.Add(op.Triple)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	r.log = nil
	return errors.Join(errs...)
}
