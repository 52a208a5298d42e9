// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

/*
Package services adapts BookOptimal components to suture.Service.

Every wrapper implements Serve(ctx) error and fmt.Stringer:

  - HTTPServerService runs ListenAndServe and drains with Shutdown.
  - CatalogRefreshService reloads the catalog snapshot on a ticker.
  - LibraryGCService runs Badger value log GC on a ticker.
  - EventRouterService builds a fresh analytics router per start.

Returning ctx.Err() after cancellation tells suture the stop was requested.
Any other error counts as a failure and triggers a restart.
*/
package services
