// Package extract provides the HTML extraction collaborator used by the
// crawler.
//
// It pulls the page title, the meta description, and all absolute http(s)
// links out of an HTML document. Relative links are resolved against the
// page's base URL so the crawl engine only ever sees absolute URLs.
//
// Design decision: We use goquery rather than walking the x/net/html tree
// by hand because:
//  1. CSS selectors keep the extraction rules short and readable
//  2. goquery tolerates the malformed HTML common on the web
//  3. It builds on x/net/html, so parsing behavior stays standard
package extract
