// Package pipeline orchestrates file discovery, the enrich, merge, dedup and
// filter stages, and batch summary reporting.
//
// [Run] is strictly sequential and fail-fast: the first stage error is logged
// once and returned, and the [Result] records which outputs were completed
// before it. [Analyze] inspects an input directory without writing anything.
package pipeline
