// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package report renders trust decisions for humans and tools.
//
// It renders a verified (or rejected) peer chain as an ASCII tree, a
// markdown table or structured JSON, and lists accepted issuers as a
// markdown table. Tables are rendered with [tablewriter].
//
// The status of each chain position follows the order in which the chain is
// walked: positions above a failure were trusted, the failing position is
// rejected and positions below it were never evaluated.
//
// [tablewriter]: https://github.com/olekukonko/tablewriter
package report
