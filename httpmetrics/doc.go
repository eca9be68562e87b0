// Package httpmetrics is an HTTP middleware exporting Prometheus request
// metrics with bounded label cardinality.
//
// Three instruments can be enabled through Options.Defaults:
//
//   - restify_status_codes{status_code}: responses per status code
//   - restify_path_duration{path,status_code,method}: response time in
//     seconds, recorded only for requests that matched a declared route
//   - restify_path_count{path,status_code,method}: calls per path label,
//     limited to Options.MaxPathsToCount distinct labels
//
// # Path labels
//
// A request matched by the router is labeled with the route as declared
// ("/users/{id}", "/users/:id", or "RegExp(/^\/v[0-9]+/)" for regular
// expressions), so every request hitting one route shares one label.
// Unmatched requests use the literal URL path; restify_path_count is then
// the only instrument keyed by free text and the admission ceiling is what
// keeps it bounded. Labels beyond the ceiling are dropped from
// restify_path_count only.
//
// # Exclusion
//
// Options.Exclude exempts labels from every instrument. The rule is
// evaluated once per distinct label and the answer is cached for the life of
// the Middleware, so predicate rules must be deterministic per label.
//
// # Exposition
//
// Unless disabled, requests to Options.Route (default "/metrics") are
// answered with the exposition text and are not themselves measured.
//
// # Usage
//
//	r := mux.NewRouter()
//	r.HandleFunc("/users/{id}", getUser)
//
//	mw, err := httpmetrics.New(httpmetrics.Options{
//	    Router:  httpmetrics.MuxRouter{Router: r},
//	    Exclude: []string{"/healthz"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Fatal(http.ListenAndServe(":8080", mw.Wrap(r)))
//
// For gin, see the ginmetrics subpackage.
package httpmetrics
