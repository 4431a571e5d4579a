// Package layout derives the fixed-length byte layout of a message scope
// from a spec tree.
//
// Containers occupy no bytes; leaves, transitory markers included, are laid
// out in pre-order with repeated containers expanded to their maximum
// occurrence. Entry order is part of the output contract.
package layout
