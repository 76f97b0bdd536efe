// Package mvc is a small front-controller web framework. A single
// Dispatcher receives every request, resolves it to a handler by exact URL
// path, binds request parameters to the handler's declared arguments,
// invokes it, and turns the returned Result into a response.
//
// Handlers are plain functions. Their parameters are declared explicitly
// when the route is registered, and typed adapters check at Init that each
// declaration matches the function's Go types:
//
//	d := mvc.New(mvc.WithContextPath("/shop"))
//	books := d.Controller("/book", mvc.WithControllerName("BookController"))
//
//	mvc.Handle(books, "/list", mvc.Method2(ctrl.ListBooks,
//	    mvc.RequestParam(), mvc.ResponseParam()))
//	mvc.Handle(books, "/get", mvc.Method1(ctrl.GetBook,
//	    mvc.BoundParam("bookID", "id")), mvc.WithResponseBody())
//
//	if err := d.Init(); err != nil {
//	    log.Fatal(err)
//	}
//	http.ListenAndServe(":8080", d)
//
// The *http.Request and *Response handles are injected by type. String
// parameters are bound by name: a BoundParam matches only its binding name,
// a NamedParam matches its own name. Only the first value of a multi-valued
// parameter is used, and keys that match no parameter are dropped.
//
// A handler returns a Result:
//
//	mvc.View("/book/list.html")     // forward to the view
//	mvc.Forward("/book/list")       // same as View("forward:/book/list")
//	mvc.Redirect("/book/list")      // same as View("redirect:/book/list")
//	mvc.Body(books)                 // serialized on WithResponseBody routes
//	mvc.None()                      // the handler wrote the response itself
//
// Requests that match no route receive "<h1>404 NOT FOUND</h1>". Handler
// errors and panics are logged and never reach the serving loop.
package mvc
