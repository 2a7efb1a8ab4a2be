// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "strings"

// Product represents a row in the products table. Img is an opaque image
// reference whose prefix decides how a presentation layer resolves it; see
// ImgRef.
type Product struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Img        string  `json:"img"`
	CategoryID int64   `json:"categoryId"`
	Quantity   int64   `json:"quantity"`
}

// ImgRefKind classifies a product image reference.
type ImgRefKind int

// Image reference kinds, in the order a presentation layer checks them.
const (
	ImgRefAsset   ImgRefKind = iota // bundled asset name (fallback)
	ImgRefFile                      // file:// URI
	ImgRefContent                   // content:// URI
	ImgRefURL                       // http(s) URL
)

// ImgRef classifies the product's image reference by prefix. References that
// match no known prefix resolve to a bundled asset; this convention must hold
// for databases written by earlier versions of the app.
func (p *Product) ImgRef() ImgRefKind {
	switch {
	case strings.HasPrefix(p.Img, "file://"):
		return ImgRefFile
	case strings.HasPrefix(p.Img, "content://"):
		return ImgRefContent
	case strings.HasPrefix(p.Img, "http"):
		return ImgRefURL
	default:
		return ImgRefAsset
	}
}
