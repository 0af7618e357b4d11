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
	"testing"

	"pgregory.net/rapid"
)

func boolPtr(b bool) *bool { return &b }

func TestDeriveStateMutability(t *testing.T) {
	tests := []struct {
		explicit StateMutability
		constant *bool
		payable  *bool
		want     StateMutability
	}{
		{"", nil, nil, NonPayable},
		{"", boolPtr(true), nil, View},
		{"", boolPtr(true), boolPtr(false), View},
		{"", boolPtr(true), boolPtr(true), View},
		{"", boolPtr(false), boolPtr(false), NonPayable},
		{"", boolPtr(false), boolPtr(true), Payable},
		{"", nil, boolPtr(true), Payable},
		{"", nil, boolPtr(false), NonPayable},
		{Pure, boolPtr(false), boolPtr(true), Pure},
		{View, nil, nil, View},
		{Payable, boolPtr(true), nil, Payable},
		{"bogus", boolPtr(true), nil, View},
	}
	for i, tt := range tests {
		if have := DeriveStateMutability(tt.explicit, tt.constant, tt.payable); have != tt.want {
			t.Errorf("test %d: have %q, want %q", i, have, tt.want)
		}
	}
}

func TestLegacyConflict(t *testing.T) {
	tests := []struct {
		m        StateMutability
		constant *bool
		payable  *bool
		want     bool
	}{
		{NonPayable, boolPtr(false), boolPtr(false), false},
		{View, boolPtr(true), boolPtr(false), false},
		{Pure, boolPtr(true), nil, false},
		{Payable, boolPtr(false), boolPtr(true), false},
		{Payable, nil, nil, false},
		{Payable, boolPtr(true), nil, true},
		{View, boolPtr(false), nil, true},
		{NonPayable, nil, boolPtr(true), true},
		{Payable, nil, boolPtr(false), true},
	}
	for i, tt := range tests {
		if have := LegacyConflict(tt.m, tt.constant, tt.payable); have != tt.want {
			t.Errorf("test %d: have %v, want %v", i, have, tt.want)
		}
	}
}

// optionalBool draws an absent, false or true flag.
func optionalBool(t *rapid.T, label string) *bool {
	switch rapid.IntRange(0, 2).Draw(t, label) {
	case 1:
		return boolPtr(false)
	case 2:
		return boolPtr(true)
	}
	return nil
}

func TestDerivedMutabilityProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		constant := optionalBool(t, "constant")
		payable := optionalBool(t, "payable")
		have := DeriveStateMutability("", constant, payable)

		switch {
		case constant != nil && *constant:
			if have != View {
				t.Fatalf("constant item derived %q", have)
			}
		case payable != nil && *payable:
			if have != Payable {
				t.Fatalf("payable item derived %q", have)
			}
		default:
			if have != NonPayable {
				t.Fatalf("plain item derived %q", have)
			}
		}
		if !have.IsValid() {
			t.Fatalf("derived invalid mutability %q", have)
		}
		// A derived value never contradicts the flags it came from, unless
		// the document set both constant and payable.
		if LegacyConflict(have, constant, payable) && !(constant != nil && *constant && payable != nil && *payable) {
			t.Fatalf("derived %q conflicts with its own flags", have)
		}
		explicit := rapid.SampledFrom(allMutabilities).Draw(t, "explicit")
		if kept := DeriveStateMutability(explicit, constant, payable); kept != explicit {
			t.Fatalf("explicit %q replaced by %q", explicit, kept)
		}
	})
}
