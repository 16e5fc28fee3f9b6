package engine

import (
	"fmt"

	"github.com/amorphlab/amorph/errors"
)

// Op identifies one of the four core operations. The set is closed: batch
// dispatch switches over these values rather than looking names up at
// runtime.
type Op int

const (
	OpBase Op = iota
	OpModulus
	OpAnamorphicBase
	OpAnamorphicModulus
)

var opTags = map[Op]string{
	OpBase:              "amorphous_base",
	OpModulus:           "amorphous_modulus",
	OpAnamorphicBase:    "anamorphous_base",
	OpAnamorphicModulus: "anamorphous_modulus",
}

// String returns the ledger tag for the operation.
func (op Op) String() string {
	if tag, ok := opTags[op]; ok {
		return tag
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

func (op Op) valid() bool {
	_, ok := opTags[op]
	return ok
}

// ParseOp maps an operation name to its Op. It accepts the short batch
// names (base, modulus, anamorphic_base, anamorphic_modulus) as well as the
// full ledger tags. Any other name is an unknown-operation error.
func ParseOp(name string) (Op, error) {
	switch name {
	case "base", "amorphous_base":
		return OpBase, nil
	case "modulus", "amorphous_modulus":
		return OpModulus, nil
	case "anamorphic_base", "anamorphous_base":
		return OpAnamorphicBase, nil
	case "anamorphic_modulus", "anamorphous_modulus":
		return OpAnamorphicModulus, nil
	}
	return 0, errors.UnknownOperation(name)
}
