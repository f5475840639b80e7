// Package models defines the core domain models for Billsplit.
//
// # Models
//
//   - Bill: the editable document (people, items, tax and tip settings)
//   - Person: someone paying part of the bill
//   - Item: a line item whose cost is shared by ratio
//   - Split: one person's ratio on one item
//   - Adjustment: tax or tip, as a percentage or a flat amount
//   - PersonSplit, BillSummary: calculated results
//
// # Design Principles
//
// 1. **Values, not pointers**: a Bill is passed by value through the editor
// package, which copies before changing anything
// 2. **Avoid circular references**: relationships use ID strings
// 3. **Derived data stays derived**: totals are never stored, the calculator
// recomputes them from the document
package models
