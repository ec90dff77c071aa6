// Package asm implements a small textual form for lowering-layer modules.
//
// The format exists for tools and test fixtures: it covers exactly the
// constructs the lowering pipeline consumes (named struct types, resource
// globals with descriptor bindings, functions with linkage and a stage
// attribute, and the placeholder instructions). It is not a general shader
// language.
//
//	shader "frag_demo"
//
//	type Inner = struct { data: []f32, }
//	type Block = struct { inner: Inner, }
//
//	var buf: Block @group(0) @binding(2) storage
//
//	fn main external stage(fragment) {
//	    %0 = arraylength buf : []f32
//	    discard
//	    ret
//	}
package asm
