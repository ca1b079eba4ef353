// Package core provides the business logic for sorting and searching price lists.
//
// This package holds all domain logic independent of any UI or transport layer.
// It is used by the CLI, the HTTP lookup server, and tests without modification.
//
// # Price List
//
// A price list is a comma-separated UTF-8 file whose first line is a header
// and whose remaining lines are item rows:
//
//	分類,名前,回数,状態,買値,売値,備考,人工
//	草,薬草,-,ふつう,100,35,,
//	壺,保存の壺,5,祝福,"1,200",420,,
//
// Only columns 0 (category), 3 (state) and 4 (buy price) take part in sorting.
// Every other column is carried through untouched.
//
// # Sorting
//
// [SortRows] orders rows by the composite key (category rank, buy price,
// state rank). Categories must be one of [CategoryOrder]; unknown states rank
// after every entry in [StateOrder]. The sort is stable.
//
// [Run] is the one-shot pipeline: [LoadFile], [SortRows], [SaveFile].
//
// # Lookup
//
// [Filter] applies a [Query] to a sorted list, mirroring the search page the
// price list was originally published with.
//
// # Error Handling
//
// Failures wrap one of the sentinel errors in errors.go and are mapped to
// user-facing messages with [MapError]:
//
//   - FILE001-FILE005: File errors (missing input, CSV format, encoding)
//   - VAL001-VAL003: Row errors (category, price, column count)
//   - REQ001: Invalid lookup query
package core
