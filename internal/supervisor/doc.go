// Cinematch - Content-Based Movie Recommendations with Poster Art
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package supervisor runs the long-lived parts of the server under suture v4.

The tree is small:

	RootSupervisor ("cinematch")
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

The dataset and recommender are immutable after startup and need no
supervision. Poster fetching happens inside request handlers and is bounded
by its own retry policy and circuit breaker, so only the HTTP listener is a
service. A listener that fails (for example a transient bind error during a
rolling restart) is restarted with suture's backoff.

Supervisor events are logged through sutureslog. The slog.Logger handed to
NewSupervisorTree is normally logging.NewSlogLogger(), which writes into the
same zerolog stream as the rest of the process.

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	errCh := tree.ServeBackground(ctx)
*/
package supervisor
