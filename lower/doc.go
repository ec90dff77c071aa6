// Package lower transforms a translated shader module into target-builder
// operations.
//
// The package provides the pieces the pipeline is built from: entry-point
// resolution, the shader-stage registry riding on entry-function metadata,
// access-path reconciliation for addressing chains whose zero-offset steps
// were collapsed upstream, and the ordered pass pipeline itself.
package lower
