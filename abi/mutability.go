// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.


package abi

import (
	"golang.org/x/exp/slices"
)

// StateMutability declares the side-effect class of a function.
type StateMutability string

const (
	Pure       StateMutability = "pure"
	View       StateMutability = "view"
	NonPayable StateMutability = "nonpayable"
	Payable    StateMutability = "payable"
)

var (
	allMutabilities     = []StateMutability{Pure, View, NonPayable, Payable}
	deployMutabilities  = []StateMutability{NonPayable, Payable}
	receiveMutabilities = []StateMutability{Payable}
)

// IsValid reports whether m is one of the four known mutabilities.
func (m StateMutability) IsValid() bool {
	return slices.Contains(allMutabilities, m)
}

// IsConstant reports whether the function cannot modify state.
func (m StateMutability) IsConstant() bool {
	return m == Pure || m == View
}

// allowedMutabilities returns the mutabilities an item of the given kind may
// declare, or nil for kinds without one.
func allowedMutabilities(kind Kind) []StateMutability {
	switch kind {
	case Function:
		return allMutabilities
	case Constructor, Fallback:
		return deployMutabilities
	case Receive:
		return receiveMutabilities
	}
	return nil
}

// DeriveStateMutability computes the mutability of an item from the legacy
// boolean flags that predate the stateMutability field (Solidity < 0.4.16).
// A valid explicit value always wins. Otherwise constant implies view and
// payable implies payable; an item setting neither is nonpayable.
//
// A nil flag means the field was absent from the document.
func DeriveStateMutability(explicit StateMutability, constant, payable *bool) StateMutability {
	switch {
	case explicit.IsValid():
		return explicit
	case constant != nil && *constant:
		return View
	case payable != nil && *payable:
		return Payable
	default:
		return NonPayable
	}
}

// LegacyConflict reports whether an explicit mutability contradicts the
// deprecated flags sitting next to it, e.g. stateMutability "payable" with
// constant true. Absent flags never conflict.
func LegacyConflict(m StateMutability, constant, payable *bool) bool {
	if constant != nil && *constant != m.IsConstant() {
		return true
	}
	if payable != nil && *payable != (m == Payable) {
		return true
	}
	return false
}
