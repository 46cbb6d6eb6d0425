/*
Package dsl provides a Go DSL for programmatically constructing constraint trees.

It allows developers to declare form logic with type-safe constructors instead of relying
on YAML or JSON documents. Plain Go values passed as operands are wrapped into
constraint.Literal, while existing nodes pass through untouched.

Example usage:

	package main

	import (
		"github.com/aretw0/formlogic/pkg/constraint"
		"github.com/aretw0/formlogic/pkg/dsl"
	)

	func main() {
		// Require an SSH key only when key authentication is selected.
		requiredIf := dsl.On("auth.type").Eq("key")

		// Build compound conditions fluently.
		hidden := dsl.When(dsl.On("mode").Ne("advanced")).
			Or(dsl.On("features").Length().Lt(1)).
			Build()

		_ = constraint.Test(requiredIf, constraint.Map{"auth": map[string]any{"type": "key"}})
		_ = hidden
	}
*/
package dsl
