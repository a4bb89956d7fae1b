// Package naming parses the metadata embedded in input file names and builds
// the names of files derived from them.
//
// Input base names follow <job>_<batch>_Pass <n>_<list>[_<rest>...]; the
// first four underscore-delimited tokens become the Job, AA, Pass and List
// columns prepended by enrichment.
package naming
