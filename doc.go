// Package finlogic provides query and report helpers over the
// pre-processed financial statements of Brazilian public companies
// published by the CVM (the Brazilian securities regulator).
//
// The heavy lifting, extracting and normalizing the regulator's raw
// filings, happens out-of-band in a scheduled pipeline that publishes
// compressed CSV datasets. This package downloads those datasets, loads
// them wholesale into memory, and exposes read-only views:
//   - Dataset loading: fetching the accounting entries, trading
//     profiles, and account-name translations, with a daily-expiring
//     disk cache for the HTTP responses.
//   - Company search: locating companies by name, CVM id, tax id
//     (CNPJ) or market segment.
//   - Financial statements: pivoting a company's accounting entries
//     into per-period statement columns, including a trailing
//     twelve-months column for income and cash-flow statements.
//   - Indicators: a dataset-wide table of operating indicators
//     (margins, returns, debt figures) derived from the raw entries,
//     queryable per company or ranked across a market segment.
//
// This package is the foundational logic for the `flq` command-line
// tool. All queries are synchronous and operate on the immutable
// in-memory dataset; a Dataset is not safe for concurrent mutation but
// is safe for concurrent reads once loaded.
package finlogic
