// Package models defines the core domain records for Splitr.
//
// # Records
//
//   - User: registered account, created on first registration
//   - Expense: a shared cost paid by one user and split among participants
//   - Split: one participant's owed share of a single expense
//   - Settlement: a direct payment between two users reducing a debt
//   - Group: a named set of members whose expenses are scoped together
//
// # Design Principles
//
// 1. **IDs, not pointers**: records reference each other by UUID strings to
// avoid circular references and keep them trivially serializable.
//
// 2. **Append-only money events**: Expenses and Settlements are never
// mutated by the balance engine. The only field that changes after creation
// is a split's Paid flag, and that happens through explicit store updates.
//
// 3. **Derived state stays derived**: balances, ledgers and summaries are
// computed by the calculator package from these records and are never
// persisted.
package models
