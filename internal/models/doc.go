// Package models defines the core domain models for RateCraft.
//
// # Models
//
//   - Item: a priced service line shown on the rate card
//   - Draft: the unvalidated form state used to compose or edit one Item
//   - Settings: scalar presentation options (branding, typography, layout)
//
// # Design Principles
//
// 1. **Validated entities**: an Item only exists once its Draft passed validation,
// so Name and Unit are never empty and Rate is always finite.
// 2. **Text until commit**: Draft keeps the rate as raw text so partially typed input
// survives until the user commits it.
// 3. **Documented defaults**: every Settings field has a default used on first run,
// when a persisted value is malformed, and on reset.
// 4. **IDs, not pointers**: items are referenced by their ID string.
package models
