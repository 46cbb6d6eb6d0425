/*
Package form models declarative, data-driven forms.

A Form is an ordered list of FieldConfig entries. Each field names a dotted path into
the form data and may attach constraint expressions deciding whether it is hidden,
read-only or required, or computing its value from other fields. Given a data object a
Form can:

  - Resolve the per-field state (FieldState) a renderer needs.
  - Apply defaults and computed values, producing the effective data.
  - Validate the effective data, reporting every failure as a *ValidationError inside
    an *AggregateError.
  - Track which fields depend on which data paths, so callers only re-evaluate the
    fields affected by a change (see Dependencies, Affected and Diff).

Forms are loaded from YAML with Load, from generic maps with Decode, or built in Go
with New, typically together with the dsl package.
*/
package form
