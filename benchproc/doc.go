// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchproc regroups averaged benchmark results for
// presentation.
//
// The typical steps for processing a set of result files are:
//
// 1. Read each protocol's result file into a []benchcsv.Result,
// usually with benchcsv.ParseAverages. Collect these in a map from
// protocol name to results.
//
// 2. Optionally restrict the map to the protocols of interest with
// Select.
//
// 3. Group each protocol's results by two dimensions using MapBy, or
// one of its named forms ByNodesThenPayload and ByPayloadThenNodes.
// The outer dimension usually becomes the x axis of a chart and the
// inner dimension selects a series.
//
// A Nested remembers the order in which keys were first seen, so
// presentation follows the order of the input files rather than Go's
// map iteration order.
package benchproc
