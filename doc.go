// Package website serves a personal blog: markdown posts rendered through
// page templates, an RSS feed, optional PDF export of posts, and two JSON
// endpoints proxying the author's GitHub repositories.
//
// # Quick Start
//
//	cfg := config.DefaultConfig()
//	site, err := website.New(cfg, website.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer site.Close()
//
//	http.ListenAndServe(cfg.Server.Addr, site.Handler())
//
// # Request Pipeline
//
// Every response flows through the chi middleware chain:
//
//  1. request id and real client IP
//  2. structured request logging (slog)
//  3. panic recovery
//  4. color post-processing of text/html bodies (internal/postprocess)
//
// Post bodies have root-level tables wrapped when the markdown is rendered,
// so the page handlers only assemble templates.
//
// # Routes
//
//	GET /                               home page with recent posts
//	GET /blog                           all published posts
//	GET /blog/{id}                      one post (hidden posts reachable by link)
//	GET /blog/{id}/pdf                  post as PDF, when export is enabled
//	GET /rss.xml                        RSS 2.0 feed
//	GET /api/projects                   starred repositories (JSON)
//	GET /api/github/pinned-repository   pinned repositories (JSON)
//	GET /static/*                       stylesheets, cache-busted by build id
//	GET /healthz                        liveness probe
package website
