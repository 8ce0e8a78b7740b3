// Package foilerr defines the error taxonomy of the airfoil generation pipeline.
//
// Every failure the pipeline can report on its own account carries a Kind:
//
//	KindConfiguration      engine executable missing or unusable (construction time)
//	KindUnsupportedFamily  designation requested for an unknown family tag
//	KindExecutionTimeout   engine did not finish before its deadline
//	KindNonZeroExit        engine exited with a non-zero status
//	KindMissingHeader      report holds neither coordinate table header
//	KindMalformedRow       report row is short, non-numeric or out of order
//
// Match kinds with errors.Is against the exported sentinels:
//
//	if errors.Is(err, foilerr.ErrNonZeroExit) { ... }
//
// Filesystem and decoding failures that are not part of the taxonomy are
// returned wrapped with %w and never converted to an Error.
package foilerr
