// Package io writes and reads the artifacts of a run: the append-only text
// log of solutions or trace snapshots, and the JSON report of a search.
//
// # Solution Log
//
// [OpenLog] opens a log for appending. A [Log] is a [search.Sink], so the
// engine can stream solutions straight into it, one line each:
//
//	b -> c, c -> a, d -> e, e -> f, f -> a, a -> b, c -> f, f -> d | Connections: 8
//
// Without an explicit path the CLI uses [DefaultLogPath], which places logs in
// a "<level>-logs" directory named after the start time of the run. Failing
// to open or append to a log is an error with code LOG_IO; solutions are
// never dropped silently.
//
// # JSON Report
//
// [NewReport] summarizes a [search.Result] together with a run ID:
//
//	{
//	  "run_id": "8f0c3a0e-4d8e-4a59-9a53-0d1b2b1f6c11",
//	  "level": "level-5-12",
//	  "created_at": "2026-10-16T09:12:44Z",
//	  "stats": {"depth": 10, "states": 28208, "candidates": 846270, ...},
//	  "solutions": [
//	    "b -> c, c -> a, d -> e, e -> f, f -> a, a -> b, c -> f, f -> d",
//	    ...
//	  ]
//	}
//
// Use [ExportJSON] or [WriteJSON] to write it and [ImportJSON] or [ReadJSON]
// to read it back. Imported solutions are checked to parse as paths;
// [Report.Pick] returns one of them for replay by the trace command.
package io
