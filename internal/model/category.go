// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Category represents a row of the fixed reference data in the categories
// table. Categories are created by seeding and never mutated afterwards.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
