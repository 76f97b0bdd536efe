// Command bookstore serves a small book catalogue with the mvc dispatcher.
//
// Run:
//
//	go run ./cmd/bookstore serve -c bookstore.yaml
//
// List the routing table:
//
//	go run ./cmd/bookstore routes
//
// Then explore:
//
//	GET  http://localhost:8080/                  index view
//	GET  http://localhost:8080/book/list         HTML table of books
//	GET  http://localhost:8080/book/json         books as a JSON body
//	GET  http://localhost:8080/book/get?id=1     one book as a JSON body
//	POST http://localhost:8080/book/add          add a book (form field "name")
//	GET  http://localhost:8080/metrics           Prometheus metrics
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
