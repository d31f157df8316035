// Package extract turns raw HTML into plain visible text and into a list
// of candidate absolute URLs.
//
// Design decision: We use golang.org/x/net/html rather than regex or a
// heavier content-extraction library because:
//  1. It correctly handles the malformed HTML common on the web
//  2. The contract is a lossy full-text dump, not article extraction —
//     readability-style libraries would silently drop navigation and
//     boilerplate text that belongs in the corpus
//  3. One dependency covers both the text walk and the link walk
//
// Extraction is best-effort by contract: malformed markup degrades to
// whatever text and links are recoverable and never produces an error.
package extract
