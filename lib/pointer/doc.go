// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pointer defines the framework-neutral pointer events that
// interactive widgets consume.
//
// The input model is single-pointer: one gesture at a time, starting
// with [Press], followed by any number of [Move] events, and ending
// with exactly one [Release] or [Cancel]. Terminal front ends
// synthesize these from mouse reports; tests construct them directly.
package pointer
