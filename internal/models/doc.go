// Package models defines the core domain types for billsplit.
//
// # Models
//
//   - Split: one in-progress bill-splitting session (total, tip/tax rates,
//     participants, items, chosen method)
//   - Person: a participant in a Split with their calculated (or custom) amount
//   - BillItem: a line item on the bill, assignable to one or more people
//   - SavedCalculation: an immutable snapshot of a Split frozen at save time
//   - Group: a named set of people sharing an ongoing expense ledger
//   - Expense: a single dated payment recorded against a Group
//
// Participants are identified by name strings; there are no user accounts.
// Every group is local, single-device state.
//
// # Design Principles
//
//  1. Value semantics: Split and Group are plain values. The calculator
//     package takes them as input and returns new values; nothing in this
//     package or in the calculator mutates shared state.
//  2. Amounts are money.Money (integer minor units), never float64.
//  3. IDs are small integers unique within their Split for people and
//     items, and UUID strings for persisted aggregates.
package models
