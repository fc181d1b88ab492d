// Package twinboard implements the dashboard backend for a city digital twin.
//
// # Architecture
//
// The service is structured into several key packages:
//   - api: HTTP clients for the simulation and governance services
//   - dashboard: polling, merging and the latest-snapshot store
//   - database: metric history in TimescaleDB or SQLite
//   - history: records every merged dashboard and prunes old samples
//   - heatmap: GeoJSON stress overlay and skyline zones built from graph nodes
//   - chat: policy questions answered with a simulated projection
//   - notify: Telegram pushes for new high severity alerts
//   - rest: the HTTP/JSON API read by the widgets
//   - grpc: standard gRPC health service reporting upstream status
//   - scheduler: cron driven poll and prune jobs
//
// Key Features
//
//   - Merged Dashboard:
//     Governance values win when that service answers; otherwise sections are
//     derived from the simulation or reported offline. A widget never fails
//     because one service is down.
//
//   - Manual Actions:
//     Policy projections, emergency runs and signal injections override the
//     scheduled refresh for a short window so the result stays on screen.
//
//   - Trends:
//     Headline values are sampled on every poll and can be queried back with
//     MIN, MAX, AVG or SUM over 1m, 5m, 1h or 1d windows.
//
// Example Usage
//
//	curl 'localhost:8080/api/trends?metric=sdg_composite&start=2026-01-01T00:00:00Z&end=2026-01-02T00:00:00Z&window=1h'
//	grpc_health_probe -addr=localhost:50051 -service=simulation
//
// For more information about specific packages, see their respective
// documentation.
package twinboard
