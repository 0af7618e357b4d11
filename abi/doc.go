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


// Package abi validates and normalizes contract ABI descriptions.
//
// A raw JSON value is checked item by item: every parameter type must be a
// well-formed Solidity type reference, tuple types must carry components,
// and each item kind must carry its required fields. Items written in the
// legacy format, which used the constant and payable flags instead of
// stateMutability, are normalized to the current shape with the deprecated
// fields kept in place.
package abi
