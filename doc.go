/*
Package formlogic evaluates declarative form constraints and polls remote operations
until they complete.

It is built around a small constraint language: a tree of literals, property
references and operators (and, or, not, comparisons, emptiness and truthiness tests,
string prefixes and regular expressions) evaluated against a data object. Forms use
these trees to decide which fields are visible, read-only or required, to compute
field values and to validate input. The polling operator repeatedly calls a data
source until a predicate stops holding or a retry budget runs out.

# Packages

  - pkg/constraint: the constraint tree, its wire format and the evaluator.
  - pkg/dsl: Go constructors and a fluent builder for constraint trees.
  - pkg/form: declarative form fields resolved and validated against data.
  - pkg/poll: the generic polling operator and remote status helpers.
  - pkg/observability: prometheus metrics and log hooks for polls.
  - pkg/ports: the status store port, with Redis and in-memory adapters under pkg/adapters.
  - pkg/adapters/process: poll sources backed by external commands.

# Usage

	node := dsl.When(dsl.On("auth.type").Eq("key")).And(dsl.On("auth.key").Empty()).Build()
	missingKey := constraint.Test(node, constraint.Map{"auth": map[string]any{"type": "key"}})

	report, err := poll.Await(ctx, store.Source("deploy"), poll.WithInterval(time.Second))

The formlogic command exposes the same features on the command line: eval, deps,
graph, explain, check, poll and status.
*/
package formlogic
