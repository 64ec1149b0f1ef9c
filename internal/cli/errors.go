package cli

import (
	"errors"
	"fmt"

	"toolbar-cli/internal/model"
	"toolbar-cli/internal/session"
)

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type rejectedError struct {
	op string
}

func (e rejectedError) Error() string {
	return fmt.Sprintf("rejected: %s", e.op)
}

func errRejected(op string) error {
	return rejectedError{op: op}
}

// explainSessionErr turns session sentinel errors into messages that say
// what to do next.
func explainSessionErr(err error, op string, p model.Preset) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, session.ErrNotEditable):
		return fmt.Errorf("preset %s is not editable (run `toolbar use custom` first)", p.ID)
	case errors.Is(err, session.ErrDeleted):
		return fmt.Errorf("%s: node is disabled (run `toolbar restore` first)", op)
	case errors.Is(err, session.ErrRejected):
		return errRejected(op)
	default:
		return err
	}
}
