// Package dynerrors defines the error taxonomy of the dynamics engine (§7):
// structural (model build), dimensional (call-boundary), singular (joint),
// unit mismatch, and numeric (inversion) failures.
package dynerrors

import "fmt"

// StructuralError reports a problem found while building a Model: a cycle,
// a dangling parent handle, or an invalid joint axis. Model.Build aggregates
// every StructuralError it finds with go.uber.org/multierr rather than
// stopping at the first one.
type StructuralError struct {
	JointIndex int
	Reason     string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error at joint %d: %s", e.JointIndex, e.Reason)
}

// NewStructural builds a StructuralError not tied to a specific joint index
// (e.g. a cycle spanning several joints); JointIndex is -1 in that case.
func NewStructural(jointIndex int, reason string) *StructuralError {
	return &StructuralError{JointIndex: jointIndex, Reason: reason}
}

// DimensionalError reports that an input slice (q, qdot, tau) passed to a
// call-boundary operation does not have length equal to the model's joint
// count.
type DimensionalError struct {
	Field    string
	Got      int
	Expected int
}

func (e *DimensionalError) Error() string {
	return fmt.Sprintf("dimensional error: %s has length %d, expected %d", e.Field, e.Got, e.Expected)
}

// SingularJointError reports J_i <= eps in dynamics Pass 2 or Pass 3: the
// articulated inertia projected onto the joint's motion subspace has
// vanished, so q-double-dot is undefined.
type SingularJointError struct {
	JointIndex int
	J          float64
	Pass       int
}

func (e *SingularJointError) Error() string {
	return fmt.Sprintf("singular joint %d in pass %d: J = %g", e.JointIndex, e.Pass, e.J)
}

// UnitMismatchError reports an attempt to combine two values (typically
// MassProps) declared in different unit systems without normalizing first.
type UnitMismatchError struct {
	A, B string
}

func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("unit mismatch: %q vs %q", e.A, e.B)
}

// NumericError reports a numeric operation that could not be carried out,
// such as inverting a singular inertia tensor.
type NumericError struct {
	Op     string
	Reason string
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("numeric error in %s: %s", e.Op, e.Reason)
}
