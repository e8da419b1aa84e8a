// Package fetch provides the HTTP fetch collaborator used by the crawler.
//
// The crawl engine treats fetching as an abstract operation; this package
// supplies the concrete implementation: a configured http.Client, request
// header hygiene (User-Agent, Accept), per-site cookies and headers from
// configuration, and a size cap on response bodies.
package fetch
