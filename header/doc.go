// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package header normalizes the leading comment block of a source file into
// one canonical header.
//
// A [Processor] handles exactly one file. It reads the header block,
// extracts the author, creation date, company and copyright year from it,
// and replaces the block with a header of this form:
//
//	/**
//	 *   @file       main.m
//	 *   @author     Markus Chmelar
//	 *   @date       02.07.12
//	 *   @copyright       TU Wien
//	 *
//	 *   Copyright (c) 2012 TU Wien. All rights reserved.
//	 */
//
// The header block is either a header of exactly this layout, starting with
// the @file line, or the leading run of lines shaped like a line comment
// (see [IsHeaderLine]). Any other leading comment, such as a doc comment, is
// part of the body. Everything after the header block is copied byte for
// byte.
//
// Authors and company can be forced with [Overrides]. An overridden field is
// never changed by extraction; the date and the copyright year always come
// from the file.
//
// A canonical header is read back in full: the @date tag and the whole
// company of the "Copyright (c)" line are only recognized there. Processing
// a file twice yields the same result. The @copyright tag is not parsed.
package header
