// SPDX-License-Identifier: MIT
//
// Package ruleengine is a minimal, embeddable expression runtime sufficient
// to drive RULE axis columns. It is intentionally small: a guarded
// boolean/arithmetic grammar over the input coordinate, not a general
// scripting language — the core treats the expression runtime as an
// external collaborator, and this package is one concrete implementation of
// it, not the only possible one.
//
// Grammar (lowest to highest precedence):
//
//	expr       = or
//	or         = and ( "||" and )*
//	and        = not ( "&&" not )*
//	not        = "!" not | comparison
//	comparison = additive ( ("=="|"!="|">"|">="|"<"|"<=") additive )?
//	additive   = multiplicative ( ("+"|"-") multiplicative )*
//	multiplicative = unary ( ("*"|"/") unary )*
//	unary      = "-" unary | primary
//	primary    = NUMBER | STRING | "true" | "false" | IDENT | "(" expr ")"
//
// IDENT resolves against the evaluation's input coordinate (ctx.Input); an
// identifier absent from the input evaluates to nil, which is falsy but not
// an error, matching exec.IsTruthy's treatment of nil.
package ruleengine
